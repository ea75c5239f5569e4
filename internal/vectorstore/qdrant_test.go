package vectorstore

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestNewQdrantStore(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "valid URL", url: "http://localhost:6333", wantErr: false},
		{name: "no port", url: "http://qdrant.internal", wantErr: false},
		{name: "invalid URL", url: "://bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewQdrantStore(tt.url, "")
			if (err != nil) != tt.wantErr {
				t.Errorf("NewQdrantStore(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if !tt.wantErr && store == nil {
				t.Error("NewQdrantStore() returned nil store")
			}
		})
	}
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name  string
		value *qdrant.Value
		want  any
	}{
		{name: "string", value: &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: "hello"}}, want: "hello"},
		{name: "integer", value: &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: 42}}, want: int64(42)},
		{name: "double", value: &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: 1.5}}, want: 1.5},
		{name: "bool", value: &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: true}}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertValue(tt.value); got != tt.want {
				t.Errorf("convertValue() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestConvertPayloadToMap(t *testing.T) {
	payload := map[string]*qdrant.Value{
		"text":       {Kind: &qdrant.Value_StringValue{StringValue: "chunk"}},
		"chunkIndex": {Kind: &qdrant.Value_IntegerValue{IntegerValue: 3}},
		"nil":        nil,
		"tags": {Kind: &qdrant.Value_ListValue{ListValue: &qdrant.ListValue{Values: []*qdrant.Value{
			{Kind: &qdrant.Value_StringValue{StringValue: "a"}},
		}}}},
	}

	m := convertPayloadToMap(payload)
	if m["text"] != "chunk" {
		t.Errorf("text = %v, want chunk", m["text"])
	}
	if m["chunkIndex"] != int64(3) {
		t.Errorf("chunkIndex = %v, want 3", m["chunkIndex"])
	}
	if _, ok := m["nil"]; ok {
		t.Error("nil values must be dropped")
	}
	list, ok := m["tags"].([]any)
	if !ok || len(list) != 1 || list[0] != "a" {
		t.Errorf("tags = %v, want [a]", m["tags"])
	}
}
