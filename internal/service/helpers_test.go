package service

import "encoding/json"

func jsonMarshal(v interface{}) ([]byte, error) { return json.Marshal(v) }

func jsonUnmarshal(raw []byte, dest interface{}) error { return json.Unmarshal(raw, dest) }

func boolPtr(v bool) *bool { return &v }
