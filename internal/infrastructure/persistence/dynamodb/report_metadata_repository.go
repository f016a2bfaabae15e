package dynamodb

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dreschagin/macro-watch/internal/application/port"
)

const (
	attrPK            = "PK"
	attrSK            = "SK"
	attrRunID         = "run_id"
	attrGeneratedAt   = "generated_at"
	attrOverall       = "overall"
	attrWarningCount  = "warning_count"
	attrCriticalCount = "critical_count"
	attrTotalKnown    = "total_known"
	attrSubject       = "subject"
	attrArtifactKey   = "artifact_key"
)

type Config struct {
	TableName       string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// ReportMetadataRepository indexes run summaries in DynamoDB so bots and
// dashboards can look up the latest report without parsing HTML or
// touching the relational history.
type ReportMetadataRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewReportMetadataRepository(ctx context.Context, cfg Config) (*ReportMetadataRepository, error) {
	if strings.TrimSpace(cfg.TableName) == "" {
		return nil, fmt.Errorf("dynamodb table name is required")
	}
	if strings.TrimSpace(cfg.Region) == "" {
		cfg.Region = "us-east-1"
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	accessKeyID := strings.TrimSpace(cfg.AccessKeyID)
	secretAccessKey := strings.TrimSpace(cfg.SecretAccessKey)
	if accessKeyID != "" || secretAccessKey != "" {
		if accessKeyID == "" || secretAccessKey == "" {
			return nil, fmt.Errorf("both dynamodb access key id and secret access key are required for static credentials")
		}
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws config for dynamodb: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(options *dynamodb.Options) {
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			options.BaseEndpoint = &endpoint
		}
	})

	return &ReportMetadataRepository{
		client:    client,
		tableName: strings.TrimSpace(cfg.TableName),
	}, nil
}

// Put writes one run summary. The partition groups all runs so the sort
// key, a millisecond timestamp, gives "latest report" with one bounded
// query.
func (r *ReportMetadataRepository) Put(ctx context.Context, meta port.ReportMetadata) error {
	runID := strings.TrimSpace(meta.RunID)
	if runID == "" {
		return fmt.Errorf("run_id is required")
	}

	generatedAtMS := meta.GeneratedAt.UTC().UnixMilli()

	item := map[string]types.AttributeValue{
		attrPK:            &types.AttributeValueMemberS{Value: "RUNS"},
		attrSK:            &types.AttributeValueMemberS{Value: fmt.Sprintf("TS#%013d#%s", generatedAtMS, runID)},
		attrRunID:         &types.AttributeValueMemberS{Value: runID},
		attrGeneratedAt:   &types.AttributeValueMemberN{Value: strconv.FormatInt(generatedAtMS, 10)},
		attrOverall:       &types.AttributeValueMemberS{Value: meta.Overall},
		attrWarningCount:  &types.AttributeValueMemberN{Value: strconv.Itoa(meta.WarningCount)},
		attrCriticalCount: &types.AttributeValueMemberN{Value: strconv.Itoa(meta.CriticalCount)},
		attrTotalKnown:    &types.AttributeValueMemberN{Value: strconv.Itoa(meta.TotalKnown)},
	}

	if subject := strings.TrimSpace(meta.Subject); subject != "" {
		item[attrSubject] = &types.AttributeValueMemberS{Value: subject}
	}
	if artifactKey := strings.TrimSpace(meta.ArtifactKey); artifactKey != "" {
		item[attrArtifactKey] = &types.AttributeValueMemberS{Value: artifactKey}
	}

	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &r.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb put failed: %w", err)
	}

	return nil
}
