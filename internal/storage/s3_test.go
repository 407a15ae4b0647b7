package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://photos.s3.eu-west-1.amazonaws.com",
		publicBaseURL(S3Config{Bucket: "photos", Region: "eu-west-1"}))
	assert.Equal(t, "http://localhost:9000/photos",
		publicBaseURL(S3Config{Bucket: "photos", Endpoint: "http://localhost:9000/"}))
}
