package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("  +91 1111  \n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Phone?", &out)
	require.NoError(t, err)
	assert.Equal(t, "+91 1111", got)
	assert.Equal(t, "Phone?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
}

func TestGetSimpleTextEmptyEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader(""))
	var out bytes.Buffer
	_, err := GetSimpleText(in, "Name?", &out)
	require.Error(t, err)
}

func TestGetCode(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return []byte(" 123456 "), nil }

	var out bytes.Buffer
	code, err := GetCode(&out)
	require.NoError(t, err)
	assert.Equal(t, "123456", code)
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestGetCode_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }

	var out bytes.Buffer
	_, err := GetCode(&out)
	require.Error(t, err)
}
