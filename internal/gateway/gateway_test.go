package gateway_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etsoo/sendcloud-go/internal/gateway"
)

// statusTransport replies with a fixed status. Needed for final 1xx
// statuses, which a real server only sends as informational responses.
type statusTransport struct {
	status int
}

func (s *statusTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: s.status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    r,
	}, nil
}

func TestPostForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "user1", r.FormValue("smsUser"))
		assert.Equal(t, "0", r.FormValue("msgType"))

		w.Write([]byte(`{"result":true}`))
	}))
	defer srv.Close()

	c := gateway.NewClient(nil, 0)
	body, err := c.PostForm(context.Background(), srv.URL, map[string]string{
		"smsUser": "user1",
		"msgType": "0",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":true}`, string(body))
}

func TestPostFormHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	c := gateway.NewClient(nil, 0)
	_, err := c.PostForm(context.Background(), srv.URL, map[string]string{"a": "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway: status 502")
}

func TestPostFormNonSuccessClass(t *testing.T) {
	tests := []struct {
		status int
		ok     bool
	}{
		{http.StatusContinue, false},
		{http.StatusOK, true},
		{http.StatusNoContent, true},
		{http.StatusMultipleChoices, false},
	}

	for _, tt := range tests {
		c := gateway.NewClient(&http.Client{Transport: &statusTransport{status: tt.status}}, 0)
		_, err := c.PostForm(context.Background(), "http://gateway.test/send", map[string]string{"a": "1"})
		if tt.ok {
			assert.NoError(t, err, "status %d", tt.status)
		} else {
			assert.Error(t, err, "status %d", tt.status)
		}
	}
}

func TestPostFormNetworkError(t *testing.T) {
	c := gateway.NewClient(nil, 0)
	_, err := c.PostForm(context.Background(), "http://127.0.0.1:1", map[string]string{"a": "1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway: send request:")
}

func TestParseResponse(t *testing.T) {
	resp, err := gateway.ParseResponse([]byte(`{"result":true,"statusCode":200,"message":"OK","info":{"successCount":1}}`))
	require.NoError(t, err)
	assert.True(t, resp.Result)
	require.NotNil(t, resp.StatusCode)
	assert.Equal(t, 200, *resp.StatusCode)
	require.NotNil(t, resp.Message)
	assert.Equal(t, "OK", *resp.Message)
	assert.Equal(t, float64(1), resp.Info["successCount"])
}

func TestParseResponseOptionalFields(t *testing.T) {
	resp, err := gateway.ParseResponse([]byte(`{"result":false}`))
	require.NoError(t, err)
	assert.False(t, resp.Result)
	assert.Nil(t, resp.StatusCode)
	assert.Nil(t, resp.Message)
	assert.Nil(t, resp.Info)
}

func TestParseResponseMalformed(t *testing.T) {
	_, err := gateway.ParseResponse([]byte("<html>oops</html>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway: parse response:")
}

func TestClientImplementsTransport(t *testing.T) {
	var _ gateway.Transport = (*gateway.Client)(nil)
}
