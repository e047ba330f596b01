package main

import (
	"context"
	"net/http"
	"strings"

	"bookshelf-api/internal/handlers"
	"bookshelf-api/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
)

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch strings.ToUpper(event.HTTPMethod) {
	case http.MethodGet, http.MethodPost:
	default:
		return lambda.NotFoundResponse(), nil
	}

	container, err := lambda.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		return lambda.InternalErrorResponse(), err
	}

	req, err := lambda.FromAPIGateway(event)
	if err != nil {
		container.Logger.WithError(err).Error("Failed to read API Gateway event")
		return lambda.InternalErrorResponse(), nil
	}

	messageHandler := handlers.NewMessageHandler(container.MessageService, container.Logger)

	resp, err := messageHandler.HandleRequest(ctx, req)
	if err != nil {
		container.Logger.WithError(err).Error("Failed to encode message response")
		return lambda.InternalErrorResponse(), nil
	}

	return resp.ToAPIGateway(), nil
}

func main() {
	awslambda.Start(handler)
}
