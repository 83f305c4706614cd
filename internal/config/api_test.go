package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	raw := `
private:
  token: "abc"
  client_id: "123"
  owners:
    - "1"
  prefix: "!"
  redis:
    address: "localhost:6379"
servers:
  - id: "g1"
    prefixes:
      - "$"
      - "%"
`

	root, err := Read(strings.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, "abc", root.Private.Token)
	assert.Equal(t, "123", root.Private.ClientID)
	assert.Equal(t, []string{"1"}, root.Private.Owners)
	assert.Equal(t, "!", root.Private.Prefix)
	assert.Equal(t, "localhost:6379", root.Private.Redis.Address)

	require.Len(t, root.Servers, 1)
	assert.Equal(t, "g1", root.Servers[0].GuildID)
	assert.Equal(t, []string{"$", "%"}, root.Servers[0].Prefixes)
}

func TestWriteRoundTrip(t *testing.T) {
	root := &Root{
		Servers: []Server{
			{GuildID: "g1", Prefixes: []string{"$"}},
		},
		Private: Private{
			Token:  "abc",
			Prefix: "!",
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, root))

	decoded, err := Read(buf)
	require.NoError(t, err)
	assert.Equal(t, root, decoded)
}
