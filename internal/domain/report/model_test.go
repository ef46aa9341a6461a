package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputData_KeepsExtraKeys(t *testing.T) {
	raw := `{"fullName":"Jane Doe","dateOfBirth":"1990-01-15","birthPlace":"Oslo","question":{"topic":"career"}}`

	var in InputData
	require.NoError(t, json.Unmarshal([]byte(raw), &in))

	assert.Equal(t, "Jane Doe", in.FullName)
	assert.Equal(t, "1990-01-15", in.DateOfBirth)
	assert.Equal(t, "Oslo", in.Extra["birthPlace"])
	assert.Equal(t, map[string]interface{}{"topic": "career"}, in.Extra["question"])

	out, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestInputData_RejectsNonStringName(t *testing.T) {
	var in InputData
	err := json.Unmarshal([]byte(`{"fullName":42,"dateOfBirth":"1990-01-15"}`), &in)
	assert.Error(t, err)
}

func TestInputData_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      InputData
		missing []string
	}{
		{name: "complete", in: InputData{FullName: "Jane", DateOfBirth: "1990-01-15"}},
		{name: "missing name", in: InputData{DateOfBirth: "1990-01-15"}, missing: []string{"fullName"}},
		{name: "blank date", in: InputData{FullName: "Jane", DateOfBirth: "  "}, missing: []string{"dateOfBirth"}},
		{name: "empty", in: InputData{}, missing: []string{"fullName", "dateOfBirth"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := tt.in.Validate()
			if len(tt.missing) == 0 {
				assert.Nil(t, problems)
				return
			}
			assert.Len(t, problems, len(tt.missing))
			for _, key := range tt.missing {
				assert.Contains(t, problems, key)
			}
		})
	}
}

func TestValidType(t *testing.T) {
	for _, typ := range Types {
		assert.True(t, ValidType(typ), typ)
	}
	assert.False(t, ValidType("horoscope"))
	assert.False(t, ValidType(""))
}
