package service

import (
	"github.com/theapemachine/cinematch/pkg/a2a"
	"github.com/theapemachine/cinematch/pkg/ai"
	"github.com/theapemachine/cinematch/pkg/tools"
)

const (
	ToolResultsArtifact = "ToolResults"

	failurePrefix = "I'm sorry, an error occurred: "
)

func responseArtifactName(agentID string) string {
	return agentID + "Response"
}

/*
completedTask turns an agent result into a completed task. The reply text is
carried both as the status message and as the <agentId>Response artifact.
Tool outputs, if any, go into a separate ToolResults artifact, one part per
call.
*/
func completedTask(agentID, taskID, contextID string, result *ai.Result) *a2a.Task {
	var (
		text        string
		toolResults []any
	)

	if result != nil {
		text = result.Text
		toolResults = result.ToolResults
	}

	message := a2a.NewAgentMessage(text)
	message.TaskID = taskID
	message.ContextID = contextID

	task := a2a.NewTask(taskID, contextID, a2a.TaskStateCompleted, message)
	task.AddArtifact(a2a.NewTextArtifact(responseArtifactName(agentID), text))

	if len(toolResults) > 0 {
		parts := make([]a2a.Part, 0, len(toolResults))

		for _, out := range toolResults {
			parts = append(parts, a2a.NewTextPart(tools.ResultText(out)))
		}

		task.AddArtifact(a2a.NewArtifact(ToolResultsArtifact, parts...))
	}

	return task
}

func failedTask(taskID, contextID string, err error) *a2a.Task {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}

	message := a2a.NewAgentMessage(failurePrefix + reason)
	message.TaskID = taskID
	message.ContextID = contextID

	return a2a.NewTask(taskID, contextID, a2a.TaskStateFailed, message)
}
