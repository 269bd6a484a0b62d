package commands

type CommandRequest struct {
	CallerID    string   `json:"caller_id" binding:"required,max=64"`
	DisplayName string   `json:"display_name" binding:"max=128"`
	Command     string   `json:"command" binding:"required,max=64"`
	Args        []string `json:"args" binding:"max=8"`
}
