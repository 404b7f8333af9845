package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuickTest_FullDescriptor(t *testing.T) {
	text := `URL: https://example.com/login
Username: alice
Password: s3cret`

	descriptor, ok := ParseQuickTest(text)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/login", descriptor.URL)
	assert.Equal(t, "alice", descriptor.Username)
	assert.Equal(t, "s3cret", descriptor.Password)
}

func TestParseQuickTest_CaseInsensitiveAnyOrder(t *testing.T) {
	text := `password: hunter2
url: http://localhost:3000
USERNAME: bob`

	descriptor, ok := ParseQuickTest(text)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:3000", descriptor.URL)
	assert.Equal(t, "bob", descriptor.Username)
	assert.Equal(t, "hunter2", descriptor.Password)
}

func TestParseQuickTest_URLRequired(t *testing.T) {
	// Credentials without a URL line are not a quick test.
	text := `Username: alice
Password: s3cret`

	descriptor, ok := ParseQuickTest(text)
	assert.False(t, ok)
	assert.Nil(t, descriptor)
}

func TestParseQuickTest_URLRequiresScheme(t *testing.T) {
	_, ok := ParseQuickTest("URL: example.com/login")
	assert.False(t, ok)
}

func TestParseQuickTest_CredentialsOptional(t *testing.T) {
	descriptor, ok := ParseQuickTest("URL: https://example.com")
	require.True(t, ok)
	assert.Equal(t, "https://example.com", descriptor.URL)
	assert.Empty(t, descriptor.Username)
	assert.Empty(t, descriptor.Password)
}

func TestParseQuickTest_FirstOccurrenceWins(t *testing.T) {
	text := `URL: https://first.example.com
URL: https://second.example.com`

	descriptor, ok := ParseQuickTest(text)
	require.True(t, ok)
	assert.Equal(t, "https://first.example.com", descriptor.URL)
}

func TestParseQuickTest_ProseTextIsNotQuickTest(t *testing.T) {
	text := "The system shall allow users to log in and manage their shopping cart."

	_, ok := ParseQuickTest(text)
	assert.False(t, ok)
}
