package notification

import (
	"campfit/fitness-app/internal/config"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// sesNotifier implements the Notifier interface on top of Amazon SES.
type sesNotifier struct {
	client *ses.Client
	sender string
}

// NewSESNotifier creates a new SES-backed notifier.
func NewSESNotifier(cfg config.MailConfig) (Notifier, error) {
	// Custom resolver for SES-compatible endpoints (local stubs).
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           cfg.Endpoint,
				SigningRegion: cfg.Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(),
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		log.Printf("ERROR: Failed to load AWS SDK config for SES: %v", err)
		return nil, err
	}

	log.Printf("SES notifier initialized for region %s, sender %s", cfg.Region, cfg.Sender)

	return &sesNotifier{
		client: ses.NewFromConfig(awsSDKConfig),
		sender: cfg.Sender,
	}, nil
}

// send delivers one plain-text message.
func (n *sesNotifier) send(ctx context.Context, to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(n.sender),
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send to %s failed: %w", to, err)
	}
	return nil
}

func (n *sesNotifier) SendWelcome(ctx context.Context, toEmail, name string) error {
	subject := "Welcome to CampFit"
	body := fmt.Sprintf("Hi %s,\n\nYour account is ready. Log your first workout and check the upcoming bootcamps.\n\nThe CampFit team", name)
	return n.send(ctx, toEmail, subject, body)
}

func (n *sesNotifier) SendSuspension(ctx context.Context, toEmail, name, reason string) error {
	subject := "Your account has been suspended"
	body := fmt.Sprintf("Hi %s,\n\nYour account has been suspended.\nReason: %s\n\nContact support if you believe this is a mistake.", name, reason)
	return n.send(ctx, toEmail, subject, body)
}

func (n *sesNotifier) SendReinstatement(ctx context.Context, toEmail, name string) error {
	subject := "Your account has been reinstated"
	body := fmt.Sprintf("Hi %s,\n\nYour account is active again. Welcome back.\n\nThe CampFit team", name)
	return n.send(ctx, toEmail, subject, body)
}

func (n *sesNotifier) SendBootcampInvite(ctx context.Context, toEmail, name, bootcampTitle string, startTime time.Time) error {
	subject := fmt.Sprintf("You're invited: %s", bootcampTitle)
	body := fmt.Sprintf("Hi %s,\n\nYou've been invited to the bootcamp %q starting %s.\nOpen the app to accept your spot.\n\nThe CampFit team",
		name, bootcampTitle, startTime.Format("Mon, 2 Jan 2006 15:04 MST"))
	return n.send(ctx, toEmail, subject, body)
}
