package database

import (
	"context"
	"testing"

	appconfig "transcribe_billing/internal/config"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

func TestNewDynamoDBConfig_LocalEndpoint(t *testing.T) {
	cfg := &appconfig.Config{
		AWSRegion:        "sa-east-1",
		AWSAccessKeyID:   "local",
		AWSSecretKey:     "local",
		DynamoDBEndpoint: "http://dynamodb:8000",
	}
	awsCfg, err := NewDynamoDBConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if awsCfg.Region != "sa-east-1" {
		t.Fatalf("unexpected region %q", awsCfg.Region)
	}
	creds, err := awsCfg.Credentials.Retrieve(context.Background())
	if err != nil || creds.AccessKeyID != "local" {
		t.Fatalf("unexpected credentials %+v %v", creds, err)
	}
	ep, err := awsCfg.EndpointResolverWithOptions.ResolveEndpoint(dynamodb.ServiceID, "sa-east-1")
	if err != nil || ep.URL != "http://dynamodb:8000" {
		t.Fatalf("unexpected endpoint %+v %v", ep, err)
	}
	if _, err := awsCfg.EndpointResolverWithOptions.ResolveEndpoint("S3", "sa-east-1"); err == nil {
		t.Fatalf("expected other services to fall through")
	}
}

func TestConnectPostgres_BadURL(t *testing.T) {
	if _, err := ConnectPostgres(context.Background(), "postgres://%zz"); err == nil {
		t.Fatalf("expected parse error")
	}
}
