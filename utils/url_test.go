package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendQuery(t *testing.T) {
	got, err := AppendQuery("https://in.zivyobraz.eu/?source=board", url.Values{"import_key": {"k"}, "a": {"1", "2"}})
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "in.zivyobraz.eu", u.Host)
	assert.Equal(t, "board", u.Query().Get("source"))
	assert.Equal(t, "k", u.Query().Get("import_key"))
	assert.Equal(t, []string{"1", "2"}, u.Query()["a"])
}

func TestAppendQuery_BadEndpoint(t *testing.T) {
	_, err := AppendQuery("://nope", url.Values{})
	assert.Error(t, err)
}
