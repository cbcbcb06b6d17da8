package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/google/uuid"

	"safaruz/internal/model"
)

// StartExecutionAPI - часть *sfn.Client, запускающая выполнение конечного автомата.
type StartExecutionAPI interface {
	StartExecution(ctx context.Context, params *sfn.StartExecutionInput, optFns ...func(*sfn.Options)) (*sfn.StartExecutionOutput, error)
}

// StepFunctionsNotifier запускает по событию выполнение workflow в AWS Step Functions.
type StepFunctionsNotifier struct {
	client          StartExecutionAPI
	stateMachineARN string
}

func NewStepFunctionsNotifier(client StartExecutionAPI, stateMachineARN string) *StepFunctionsNotifier {
	return &StepFunctionsNotifier{client: client, stateMachineARN: stateMachineARN}
}

func (n *StepFunctionsNotifier) Notify(ctx context.Context, event model.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать событие: %w", err)
	}
	_, err = n.client.StartExecution(ctx, &sfn.StartExecutionInput{
		StateMachineArn: aws.String(n.stateMachineARN),
		Name:            aws.String(executionName(event)),
		Input:           aws.String(string(payload)),
	})
	if err != nil {
		return fmt.Errorf("не удалось запустить workflow брони: %w", err)
	}
	return nil
}

// executionName уникально для события и укладывается в ограничение Step Functions в 80 символов.
func executionName(event model.BookingEvent) string {
	return fmt.Sprintf("%s-%d-%s", event.Type, event.BookingID, uuid.NewString()[:8])
}
