package cloudwatch

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/dreschagin/macro-watch/internal/application/dto"
)

const (
	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond
)

// MetricsPublisherConfig holds configuration for CloudWatch publishing.
type MetricsPublisherConfig struct {
	Namespace       string // CloudWatch namespace (e.g., "MacroWatch/Indicators")
	Region          string // AWS region (e.g., "us-east-1")
	Endpoint        string // Optional endpoint override (for LocalStack)
	AccessKeyID     string
	SecretAccessKey string
}

// MetricsPublisher ships one run's indicator values and tier counts to
// CloudWatch. A run produces a couple dozen data points at most, so they
// go out in a single synchronous PutMetricData call.
type MetricsPublisher struct {
	client    *cloudwatch.Client
	namespace string
}

func NewMetricsPublisher(ctx context.Context, cfg MetricsPublisherConfig) (*MetricsPublisher, error) {
	if cfg.Namespace == "" {
		return nil, fmt.Errorf("namespace is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("region is required")
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return nil, fmt.Errorf("both cloudwatch access key id and secret access key are required for static credentials")
		}
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	client := cloudwatch.NewFromConfig(awsCfg, func(options *cloudwatch.Options) {
		if cfg.Endpoint != "" {
			options.BaseEndpoint = &cfg.Endpoint
		}
	})

	return &MetricsPublisher{client: client, namespace: cfg.Namespace}, nil
}

// PublishRun converts one report into metric data and publishes it
func (p *MetricsPublisher) PublishRun(ctx context.Context, report *dto.ReportDTO) error {
	return p.putWithRetry(ctx, buildMetricData(report))
}

func buildMetricData(report *dto.ReportDTO) []types.MetricDatum {
	timestamp := report.GeneratedAt.UTC()
	data := make([]types.MetricDatum, 0, len(report.Assessments)+3)

	for _, assessment := range report.Assessments {
		if !assessment.HasValue {
			continue
		}
		data = append(data, types.MetricDatum{
			MetricName: aws.String("IndicatorValue"),
			Value:      aws.Float64(assessment.Value),
			Timestamp:  aws.Time(timestamp),
			Unit:       types.StandardUnitNone,
			Dimensions: []types.Dimension{
				{Name: aws.String("Indicator"), Value: aws.String(assessment.IndicatorID)},
				{Name: aws.String("Status"), Value: aws.String(assessment.Status)},
			},
		})
	}

	data = append(data,
		types.MetricDatum{
			MetricName: aws.String("WarningCount"),
			Value:      aws.Float64(float64(report.WarningCount)),
			Timestamp:  aws.Time(timestamp),
			Unit:       types.StandardUnitCount,
		},
		types.MetricDatum{
			MetricName: aws.String("CriticalCount"),
			Value:      aws.Float64(float64(report.CriticalCount)),
			Timestamp:  aws.Time(timestamp),
			Unit:       types.StandardUnitCount,
		},
		types.MetricDatum{
			MetricName: aws.String("KnownIndicators"),
			Value:      aws.Float64(float64(report.TotalKnown)),
			Timestamp:  aws.Time(timestamp),
			Unit:       types.StandardUnitCount,
		},
	)

	return data
}

func (p *MetricsPublisher) putWithRetry(ctx context.Context, data []types.MetricDatum) error {
	backoff := initialBackoff

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(p.namespace),
			MetricData: data,
		})
		if err == nil {
			return nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}

	return fmt.Errorf("put metric data failed after %d attempts: %w", maxRetries, lastErr)
}
