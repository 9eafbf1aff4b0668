package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandonyx/fitsupply-cli/internal/client/models"
)

func TestDecodeList_BareAndEnvelopedAreEquivalent(t *testing.T) {
	bare := []byte(`[{"id":1,"name":"Whey"},{"id":2,"name":"Creatine"}]`)
	enveloped := []byte(`{"count":2,"results":[{"id":1,"name":"Whey"},{"id":2,"name":"Creatine"}]}`)

	fromBare, err := DecodeList[models.Product](bare)
	require.NoError(t, err)

	fromEnv, err := DecodeList[models.Product](enveloped)
	require.NoError(t, err)

	assert.Equal(t, fromBare, fromEnv)
	assert.Len(t, fromBare, 2)
	assert.Equal(t, "Creatine", fromBare[1].Name)
}

func TestDecodeList_EmptyShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty array", input: `[]`},
		{name: "envelope without results", input: `{"count":0}`},
		{name: "envelope with null results", input: `{"results":null}`},
		{name: "empty payload", input: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeList[models.Order]([]byte(tt.input))
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestDecodeList_RejectsScalars(t *testing.T) {
	_, err := DecodeList[models.Product]([]byte(`42`))
	require.Error(t, err)
}

func TestParseError_Extraction(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
		wantMsg    string
		wantFields map[string][]string
	}{
		{
			name:       "detail only",
			status:     401,
			body:       `{"detail":"Invalid credentials"}`,
			wantDetail: "Invalid credentials",
		},
		{
			name:    "message fallback",
			status:  400,
			body:    `{"message":"Cannot delete product"}`,
			wantMsg: "Cannot delete product",
		},
		{
			name:       "field errors, array and scalar",
			status:     400,
			body:       `{"email":["already taken"],"username":"required"}`,
			wantFields: map[string][]string{"email": {"already taken"}, "username": {"required"}},
		},
		{
			name:   "unparseable body",
			status: 502,
			body:   `<html>bad gateway</html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := parseError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.status, e.Status)
			assert.Equal(t, tt.wantDetail, e.Detail)
			assert.Equal(t, tt.wantMsg, e.Message)
			assert.Equal(t, tt.wantFields, e.Fields)
		})
	}
}

func TestError_FriendlyMessage(t *testing.T) {
	assert.Equal(t, "a", (&Error{Detail: "a", Message: "b"}).FriendlyMessage("c"))
	assert.Equal(t, "b", (&Error{Message: "b"}).FriendlyMessage("c"))
	assert.Equal(t, "c", (&Error{}).FriendlyMessage("c"))
}
