package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"question":"What is a commit?","choices":["a","b","c"],"answer":2}`, false},
		{"optional difficulty", `{"question":"q","choices":["a","b"],"answer":0,"difficulty":3}`, false},
		{"missing answer", `{"question":"q","choices":["a","b"]}`, true},
		{"answer wrong type", `{"question":"q","choices":["a","b"],"answer":"b"}`, true},
		{"too few choices", `{"question":"q","choices":["a"],"answer":0}`, true},
		{"difficulty out of range", `{"question":"q","choices":["a","b"],"answer":0,"difficulty":9}`, true},
		{"malformed", `{"question":`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(choiceSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() = %v, wantErr %v", err, tt.wantErr)
			}
			var invalid *ErrInvalidResponse
			if err != nil && !errors.As(err, &invalid) {
				t.Errorf("err = %T, want *ErrInvalidResponse", err)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Errorf("nil schema rejected content: %v", err)
	}
}
