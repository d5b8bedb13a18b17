package facts

import (
	"fmt"
	"strings"
)

const factSystemPrompt = `You are an automotive historian writing for a car spotting quiz. Players just identified (or failed to identify) a car from a photo and want one memorable nugget about it.`

func buildFactUserMessage(input FactInput) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Car: %s %s %d\n", input.Make, input.Model, input.Year))

	b.WriteString(`
Instructions:
Write one trivia fact about this exact car:
1. Prefer facts tied to this model year or generation: engineering firsts, motorsport results, production oddities, design stories.
2. Be specific and verifiable. Never invent numbers or events. If the model year is obscure, talk about the generation it belongs to.
3. The headline is a hook of at most 12 words. The detail is 2-3 plain sentences.
4. No marketing language, no superlatives without evidence, no emoji.`)

	return b.String()
}
