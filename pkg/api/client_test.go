package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenProvider) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, tokens)
}

func TestTokenReadFreshPerRequest(t *testing.T) {
	var got []string
	handler := func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		w.Write([]byte(`{"isSuccess":true,"result":{}}`))
	}

	token := ""
	c := newTestClient(t, handler, func() string { return token })

	_, err := c.Me(context.Background())
	require.NoError(t, err)

	// Token set after the client was constructed must be picked up.
	token = "abc"
	_, err = c.Me(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Empty(t, got[0], "anonymous request must carry no bearer header")
	assert.Equal(t, "Bearer abc", got[1])
}

func TestEnvelopeFailureOn2xxBecomesError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"isSuccess":false,"resCode":"DB-500","resMessage":"DB error"}`))
	}
	c := newTestClient(t, handler, nil)

	_, err := c.Me(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "DB-500", apiErr.Code)
	assert.Equal(t, "DB error", apiErr.Message)
	assert.Equal(t, "DB error", Message(err, "fallback"))
}

func TestEnvelopeToleratesDataKey(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"isSuccess":true,"data":{"email":"fan@encore.fan"}}`))
	}
	c := newTestClient(t, handler, nil)

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fan@encore.fan", me.Email)
}

func TestEnvelopeNullPayloadIsFine(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"isSuccess":true,"result":null}`))
	}
	c := newTestClient(t, handler, nil)
	assert.NoError(t, c.Logout(context.Background()))
}

func TestHTTPErrorCarriesServerMessage(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"isSuccess":false,"resCode":"AUTH-403","resMessage":"admin role required"}`))
	}
	c := newTestClient(t, handler, nil)

	_, err := c.AdminListMembers(context.Background(), Page{Size: 10})
	require.Error(t, err)
	assert.True(t, IsForbidden(err))
	assert.False(t, IsAuthExpired(err))
	assert.Equal(t, "admin role required", Message(err, "fallback"))
}

func TestHTTPErrorStatusHelpers(t *testing.T) {
	status := http.StatusUnauthorized
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(`expired`))
	}
	c := newTestClient(t, handler, nil)

	_, err := c.Me(context.Background())
	assert.True(t, IsAuthExpired(err))

	status = http.StatusNotFound
	_, err = c.GetContent(context.Background(), 99)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsStatus(err, http.StatusUnauthorized))
}

func TestUpdateProfileJSONWithoutImage(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"isSuccess":true,"result":{"nickname":"minji"}}`))
	}
	c := newTestClient(t, handler, nil)

	me, err := c.UpdateProfile(context.Background(), UpdateProfileRequest{Name: "Minji", Nickname: "minji"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "minji", me.Nickname)
}

func TestUpdateProfileMultipartWithImage(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Minji", r.FormValue("name"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "me.png", header.Filename)

		w.Write([]byte(`{"isSuccess":true,"result":{"nickname":"minji"}}`))
	}
	c := newTestClient(t, handler, nil)

	att := &Attachment{Field: "image", Name: "me.png", Data: []byte("png-bytes")}
	_, err := c.UpdateProfile(context.Background(), UpdateProfileRequest{Name: "Minji", Nickname: "minji"}, att)
	require.NoError(t, err)
}

func TestPageQueryPassthrough(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "30", q.Get("size"))
		assert.Equal(t, "createdAt", q.Get("sort"))
		assert.Equal(t, "desc", q.Get("direction"))
		w.Write([]byte(`{"isSuccess":true,"result":[]}`))
	}
	c := newTestClient(t, handler, nil)

	_, err := c.ListContents(context.Background(), "", Page{Index: 2, Size: 30, Sort: "createdAt", Direction: "desc"})
	require.NoError(t, err)
}

func TestImageURL(t *testing.T) {
	c := New("https://api.encore.fan/", time.Second, nil)

	assert.Equal(t, "https://api.encore.fan/uploads/a.png", c.ImageURL("/uploads/a.png"))
	assert.Equal(t, "https://api.encore.fan/uploads/a.png", c.ImageURL("uploads/a.png"))
	assert.Equal(t, "https://cdn.example/a.png", c.ImageURL("https://cdn.example/a.png"))
	assert.Empty(t, c.ImageURL(""))
}

func TestLoginPostsCredentials(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/member/login", r.URL.Path)
		w.Write([]byte(`{"isSuccess":true,"result":{"accessToken":"tok-1","refreshToken":"ref-1"}}`))
	}
	c := newTestClient(t, handler, nil)

	tokens, err := c.Login(context.Background(), LoginRequest{Email: "fan@encore.fan", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tokens.AccessToken)
	assert.Equal(t, "ref-1", tokens.RefreshToken)
}
