package storage

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseS3Location splits an "s3://bucket/key" reference into bucket and key.
func ParseS3Location(location string) (bucket, key string, err error) {
	parsed, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid dataset location %q: %w", location, err)
	}
	if parsed.Scheme != "s3" {
		return "", "", fmt.Errorf("dataset location %q must start with s3://", location)
	}

	bucket = parsed.Host
	key = strings.TrimPrefix(parsed.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("dataset location %q is missing bucket or key", location)
	}
	return bucket, key, nil
}
