package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/aml-lists-api/internal/storage"
)

var errEmptyBody = errors.New("request body is required")

// BindNestedOrFlat decodes the JSON body into obj. A body wrapped in an
// object under key ({"transaction": {...}}) and a bare body ({...} or [...])
// are both accepted.
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
	}
	// Restore body for subsequent reads
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err == nil {
		if inner, ok := wrapper[key]; ok {
			return json.Unmarshal(inner, obj)
		}
	}

	return json.Unmarshal(body, obj)
}

// readUpload returns the named multipart file and its content, enforcing the
// storage size limit
func readUpload(c *gin.Context, field string) (*multipart.FileHeader, []byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, fmt.Errorf("%s is required", field)
	}
	if header.Size > storage.MaxFileSize() {
		return nil, nil, fmt.Errorf("file exceeds %d bytes", storage.MaxFileSize())
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxFileSize()+1))
	if err != nil {
		return nil, nil, err
	}
	return header, data, nil
}
