package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	"github.com/saulo-duarte/pms-lambda/internal/config"
	"github.com/saulo-duarte/pms-lambda/internal/container"
)

var adapter *chiadapter.ChiLambda

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to load configuration")
	}

	c, err := container.New(context.Background(), cfg)
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to build container")
	}

	adapter = chiadapter.New(c.Router())
	lambda.Start(handler)
}
