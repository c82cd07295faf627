package handler

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/teamsite/internal/storage"
)

// submission is the normalized form of a create request: scalar fields plus
// an optional attached file, regardless of whether the client sent
// multipart/form-data or JSON.
type submission struct {
	fields map[string]string
	upload *storage.Upload
}

func (s *submission) field(key string) string {
	return strings.TrimSpace(s.fields[key])
}

// decodeSubmission reads either encoding into a submission. In JSON mode,
// non-string values (nested objects like gallery metadata) are re-marshalled
// so every field is carried as a string.
func decodeSubmission(c *gin.Context, fileField string) (*submission, error) {
	sub := &submission{fields: make(map[string]string)}

	if c.ContentType() == "multipart/form-data" {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}

		for key, values := range form.Value {
			if len(values) > 0 {
				sub.fields[key] = values[0]
			}
		}

		if files := form.File[fileField]; len(files) > 0 {
			header := files[0]
			file, err := header.Open()
			if err != nil {
				return nil, err
			}
			defer file.Close()

			data, err := io.ReadAll(file)
			if err != nil {
				return nil, err
			}

			sub.upload = &storage.Upload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			}
		}

		return sub, nil
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, err
	}

	for key, value := range body {
		switch v := value.(type) {
		case nil:
			// omitted
		case string:
			sub.fields[key] = v
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				continue
			}
			sub.fields[key] = string(raw)
		}
	}

	return sub, nil
}
