package service

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/theapemachine/cinematch/pkg/a2a"
	"github.com/theapemachine/cinematch/pkg/ai"
	"github.com/theapemachine/cinematch/pkg/dispatch"
	"github.com/theapemachine/cinematch/pkg/jsonrpc"
)

/*
ackResponse is the body Telex expects back from a webhook call, both for the
202 acknowledgment and for the errors raised before a job was accepted.
*/
type ackResponse struct {
	Status     string     `json:"status"`
	StatusCode int        `json:"status_code"`
	Message    string     `json:"message"`
	TaskID     string     `json:"task_id,omitempty"`
	Data       *errorData `json:"data,omitempty"`
}

type errorData struct {
	Details string `json:"details"`
}

/*
handleWebhook validates the request, queues the agent call and acknowledges
with 202. The task result is posted to the caller's push notification url by
a dispatch worker, which does not start until this handler has returned.
*/
func (srv *Server) handleWebhook(ctx fiber.Ctx) error {
	// fiber reuses the buffer behind route params once the handler returns.
	agentID := strings.Clone(ctx.Params("agentId"))

	req, err := jsonrpc.NewRequest(ctx.Body())
	if err != nil {
		return srv.webhookError(ctx, err.Error())
	}

	params, err := a2a.DecodeSendParams(req.Params)
	if err != nil {
		return srv.webhookError(ctx, err.Error())
	}

	if !validatePushConfig(params.PushConfig()) {
		return srv.webhookError(ctx, missingPushConfig)
	}

	prompt := params.Prompt()
	if !validatePrompt(prompt) {
		return srv.webhookError(ctx, missingPrompt)
	}

	taskID, contextID := taskIdentity(params)
	target := *params.PushConfig()
	requestID := req.ID

	job := dispatch.NewJob(
		taskID,
		func(jobCtx context.Context) (any, error) {
			agent, err := srv.agents.Get(agentID)
			if err != nil {
				return nil, err
			}

			result, err := agent.Generate(jobCtx, prompt, ai.WithContextID(contextID))
			if err != nil {
				return nil, err
			}

			return jsonrpc.NewResult(requestID, completedTask(agentID, taskID, contextID, result)), nil
		},
		func(err error) any {
			log.Error("task failed", "task", taskID, "agent", agentID, "error", err)
			return jsonrpc.NewResult(requestID, failedTask(taskID, contextID, err))
		},
		func(jobCtx context.Context, payload any) error {
			return srv.pusher.Deliver(jobCtx, &target, payload)
		},
	)

	// The worker blocks on this, so the agent never runs before the ack is out.
	defer job.Release()

	if err := srv.queue.Enqueue(job); err != nil {
		log.Error("failed to enqueue task", "task", taskID, "error", err)
		return srv.webhookError(ctx, err.Error())
	}

	srv.metrics.Request(ModeWebhook, "accepted")
	log.Info("task accepted", "task", taskID, "context", contextID, "agent", agentID)

	return ctx.Status(fiber.StatusAccepted).JSON(ackResponse{
		Status:     "success",
		StatusCode: fiber.StatusAccepted,
		Message:    "request received",
		TaskID:     taskID,
	})
}

func (srv *Server) webhookError(ctx fiber.Ctx, details string) error {
	srv.metrics.Request(ModeWebhook, "rejected")
	log.Warn("webhook request rejected", "details", details)

	return ctx.Status(fiber.StatusInternalServerError).JSON(ackResponse{
		Status:     "error",
		StatusCode: fiber.StatusInternalServerError,
		Message:    "Internal Server Error",
		Data:       &errorData{Details: details},
	})
}

/*
taskIdentity picks the task and context ids for a request, generating the
ones the caller left out. They are decided once so that the acknowledgment
and the delivered result agree.
*/
func taskIdentity(params *a2a.MessageSendParams) (taskID, contextID string) {
	taskID = params.TaskID
	if taskID == "" {
		taskID = uuid.NewString()
	}

	contextID = params.ContextID
	if contextID == "" {
		contextID = uuid.NewString()
	}

	return taskID, contextID
}
