package bind_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/staybook/pkg/bind"
)

type loginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func TestJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","password":"x"}`))
	var in loginInput
	errs, err := bind.JSON(req, &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "a@b.co", in.Email)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	errs, err = bind.JSON(req, &loginInput{})
	require.NoError(t, err)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	_, err = bind.JSON(req, &loginInput{})
	assert.Error(t, err)
}

func TestMultipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Garden Room"))
	require.NoError(t, mw.WriteField("is_featured", "on"))
	fw, err := mw.CreateFormFile("image", "garden.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	require.NoError(t, bind.Multipart(req))
	assert.Equal(t, "Garden Room", req.FormValue("name"))
	assert.True(t, bind.FormBool(req, "is_featured"))
	assert.False(t, bind.FormBool(req, "missing"))

	_, hdr, err := req.FormFile("image")
	require.NoError(t, err)
	assert.Equal(t, "garden.png", hdr.Filename)
}

func TestMultipartRejectsPlainBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.Error(t, bind.Multipart(req))
}
