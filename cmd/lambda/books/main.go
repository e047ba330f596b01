package main

import (
	"context"

	"bookshelf-api/internal/handlers"
	"bookshelf-api/pkg/lambda"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
)

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	container, err := lambda.GetConnectionManager().GetContainer(ctx)
	if err != nil {
		return lambda.InternalErrorResponse(), err
	}

	req, err := lambda.FromAPIGateway(event)
	if err != nil {
		container.Logger.WithError(err).Error("Failed to read API Gateway event")
		return lambda.InternalErrorResponse(), nil
	}

	bookHandler := handlers.NewBookHandler(container.BookService, container.Logger)

	resp, err := bookHandler.HandleRequest(ctx, req)
	if err != nil {
		container.Logger.WithError(err).Error("Failed to encode books response")
		return lambda.InternalErrorResponse(), nil
	}

	return resp.ToAPIGateway(), nil
}

func main() {
	awslambda.Start(handler)
}
