package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sradha-notes/backend/internal/model"
)

func TestSign(t *testing.T) {
	// Known-answer check: sorted pairs joined with & plus the secret,
	// SHA-1 hex encoded.
	sig := Sign(map[string]string{
		"eager":     "w_400,h_300,c_pad|w_260,h_200,c_crop",
		"public_id": "sample_image",
		"timestamp": "1315060510",
	}, "abcd")
	assert.Equal(t, "bfd09f95f331f558cbd1320e67aa8d488770583e", sig)
}

func TestSignSortsKeys(t *testing.T) {
	a := Sign(map[string]string{"b": "2", "a": "1"}, "s")
	b := Sign(map[string]string{"a": "1", "b": "2"}, "s")
	assert.Equal(t, a, b)
}

func TestCloudinaryUploadDataURI(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "key123", r.FormValue("api_key"))
		assert.NotEmpty(t, r.FormValue("timestamp"))
		assert.NotEmpty(t, r.FormValue("signature"))
		assert.Contains(t, r.FormValue("file"), "data:image/png;base64,")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://cdn.example/img.png",
			"public_id":  "notes/img",
		})
	}))
	defer srv.Close()

	c := NewCloudinary(CloudinaryConfig{
		CloudName: "demo", APIKey: "key123", APISecret: "shh", BaseURL: srv.URL,
	}, zerolog.Nop())

	asset, err := c.UploadDataURI(context.Background(), "data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/img.png", asset.URL)
	assert.Equal(t, "notes/img", asset.ExternalID)
	assert.Equal(t, "/v1_1/demo/image/upload", gotPath)
}

func TestCloudinaryUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "Invalid image file"},
		})
	}))
	defer srv.Close()

	c := NewCloudinary(CloudinaryConfig{
		CloudName: "demo", APIKey: "k", APISecret: "s", BaseURL: srv.URL,
	}, zerolog.Nop())

	_, err := c.UploadDataURI(context.Background(), "data:image/png;base64,xxxx")
	require.ErrorIs(t, err, model.ErrUpstream)
	assert.Contains(t, err.Error(), "Invalid image file")
}

func TestCloudinaryDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "notes/img", r.FormValue("public_id"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"result": "ok"})
	}))
	defer srv.Close()

	c := NewCloudinary(CloudinaryConfig{
		CloudName: "demo", APIKey: "k", APISecret: "s", BaseURL: srv.URL,
	}, zerolog.Nop())

	require.NoError(t, c.Delete(context.Background(), "notes/img"))
	require.NoError(t, c.Delete(context.Background(), ""), "blank external ID is a no-op")
}

func TestCloudinaryUnconfigured(t *testing.T) {
	c := NewCloudinary(CloudinaryConfig{}, zerolog.Nop())
	_, err := c.UploadDataURI(context.Background(), "data:image/png;base64,aGVsbG8=")
	require.ErrorIs(t, err, model.ErrUpstream)
}
