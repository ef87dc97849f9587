package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatbotReply_EmptyMessage(t *testing.T) {
	bot := NewChatbotService()

	assert.Equal(t, EmptyMessageResponse, bot.Reply(""))
	assert.Equal(t, EmptyMessageResponse, bot.Reply("   "))
}

func TestChatbotReply_PhraseBeatsKeyword(t *testing.T) {
	bot := NewChatbotService()

	// "how often water" must match the frequency rule, not a generic rule
	// that also mentions water.
	reply := bot.Reply("How often water my monstera?")
	assert.Contains(t, reply, "Watering Frequency")
}

func TestChatbotReply_CaseInsensitive(t *testing.T) {
	bot := NewChatbotService()

	lower := bot.Reply("am i overwatering?")
	upper := bot.Reply("AM I OVERWATERING?")
	assert.Equal(t, lower, upper)
	assert.Contains(t, lower, "Overwatering")
}

func TestChatbotReply_FirstMatchWins(t *testing.T) {
	bot := NewChatbotService()

	// Message matches both "overwater" and "soil"; the earlier rule answers.
	reply := bot.Reply("did I overwater the soil?")
	assert.Contains(t, reply, "Overwatering")
	assert.NotContains(t, reply, "Soil Tips")
}

func TestChatbotReply_FallbackHeuristics(t *testing.T) {
	bot := NewChatbotService()

	reply := bot.Reply("what is a good plant for my desk?")
	assert.Contains(t, reply, "Best Home Plants")

	reply = bot.Reply("what do you recommend?")
	assert.Contains(t, reply, "Plant Recommendations")
}

func TestChatbotReply_DefaultHelp(t *testing.T) {
	bot := NewChatbotService()

	reply := bot.Reply("tell me about the weather")
	assert.True(t, strings.Contains(reply, "Plant Care Assistant"), "unmatched input should get the help response")
}

func TestChatbotReply_SpecificTopics(t *testing.T) {
	bot := NewChatbotService()

	cases := map[string]string{
		"my plant has a bug on it":   "Pest Control",
		"when should I repot?":       "Repotting",
		"how much sunlight needed":   "Light Requirements",
		"can I propagate my pothos?": "Propagation",
	}
	for question, want := range cases {
		assert.Contains(t, bot.Reply(question), want, "question: %s", question)
	}
}
