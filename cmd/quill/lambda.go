package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/jacentio/quill/gateway"
)

func newLambdaCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Serve requests as an AWS Lambda function",
		Long: `Starts the Lambda runtime loop. Each invocation payload is one request
object; the graph lives for the lifetime of the execution environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := opts.bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			lambda.StartWithOptions(lambdaHandler(h), lambda.WithContext(cmd.Context()))
			return nil
		},
	}
}

// lambdaHandler adapts h to the Lambda handler signature. Request failures
// are reported in the response, so the invocation itself never errors.
func lambdaHandler(h *gateway.Handler) func(context.Context, gateway.Request) (gateway.Response, error) {
	return func(ctx context.Context, req gateway.Request) (gateway.Response, error) {
		return h.Handle(ctx, req), nil
	}
}
