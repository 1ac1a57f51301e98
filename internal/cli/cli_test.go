package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"talent-match/internal/domain/matching"
	"talent-match/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("REDIS_ENABLED", "false")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunCommand_JSON(t *testing.T) {
	memoryEnv(t)
	out, err := execute(t, "run", "--job", "9b1e5d2c-7a4f-4c3b-8e21-6d5c4b3a2f01", "-o", "json", "-n", "2")
	require.NoError(t, err)

	var items []struct {
		CandidateID string `json:"candidate_id"`
		MatchScore  int    `json:"match_score"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "3f6c2a1e-0b7d-4e51-9a43-1c2d3e4f5a01", items[0].CandidateID)
	assert.Equal(t, 95, items[0].MatchScore)
}

func TestRunCommand_SaveWithoutPrompt(t *testing.T) {
	memoryEnv(t)
	t.Cleanup(func() {
		_ = runCmd.Flags().Set("save", "false")
		_ = runCmd.Flags().Set("yes", "false")
	})
	out, err := execute(t, "run", "--job", "9b1e5d2c-7a4f-4c3b-8e21-6d5c4b3a2f01", "-o", "json", "-n", "0", "--save", "--yes")
	require.NoError(t, err)

	var items []struct {
		MatchScore int `json:"match_score"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 4)
	assert.Equal(t, 95, items[0].MatchScore)
}

func TestRunCommand_InvalidJob(t *testing.T) {
	memoryEnv(t)
	_, err := execute(t, "run", "--job", "nope")
	require.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	memoryEnv(t)
	sub := uuid.New()
	out, err := execute(t, "token", "--sub", sub.String(), "--email", "dev@example.com")
	require.NoError(t, err)

	claims, err := jwt.NewHMACService("cli-secret", "", time.Hour).ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, sub, got)
	assert.Equal(t, "dev@example.com", claims.Email)
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	id := uuid.New()
	require.NoError(t, printResults(&buf, []matching.Result{{
		CandidateID:   id,
		Score:         72,
		MatchedSkills: []string{"Go", "SQL"},
		SkillGaps:     []string{"Docker"},
	}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "CANDIDATE")
	assert.Contains(t, lines[1], id.String())
	assert.Contains(t, lines[1], "good")
	assert.Contains(t, lines[1], "Go, SQL")
}
