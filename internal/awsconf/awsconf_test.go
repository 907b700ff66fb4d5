package awsconf_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/internal/awsconf"
)

func TestLoad_StaticCredentials(t *testing.T) {
	cfg, err := awsconf.Load(context.Background(), "eu-west-1", "AKIDEXAMPLE", "secret")
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
}
