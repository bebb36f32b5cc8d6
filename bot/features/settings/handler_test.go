package settings

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTransport answers every Discord API call with an empty success so
// handler tests never touch the network
type stubTransport struct{}

func (stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("{}")),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}

func newStubSession(t *testing.T) *discordgo.Session {
	s, err := discordgo.New("Bot test")
	require.NoError(t, err)
	s.Client = &http.Client{Transport: stubTransport{}}
	return s
}

func TestParseGuild_RejectsDirectMessageInvocation(t *testing.T) {
	f := New(nil)
	s := newStubSession(t)

	// DM interactions carry no guild ID and no member; the guild check must
	// fail cleanly before any member access
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
	}}

	guildID, ok := f.parseGuild(s, i)

	assert.False(t, ok)
	assert.Zero(t, guildID)
}
