// Package prompts turns a generation request into the instruction text sent
// to the completion service. Everything here is pure and deterministic.
package prompts

import (
	"fmt"
	"strings"
)

const (
	ContentSystemPrompt = "You are an expert content writer and marketing specialist. Create high-quality, engaging content that drives results."
	IdeasSystemPrompt   = "You are a JSON-only response bot. Return only valid JSON arrays, no markdown or explanation."

	// DefaultIdeaCount is how many ideas an idea request asks for.
	DefaultIdeaCount = 4
)

type Request struct {
	Type            string
	Mode            string
	Topic           string
	Keywords        string // comma separated
	Tone            string
	Length          string
	Platform        string
	ExistingContent string
}

// ParseKeywords splits a comma separated keyword string, trimming blanks and
// dropping empty entries.
func ParseKeywords(s string) []string {
	out := make([]string, 0)
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// WordBand maps a length name to the word count range asked of the model.
// Anything that is not short or long is treated as medium.
func WordBand(length string) string {
	switch length {
	case "short":
		return "500-800 words"
	case "long":
		return "2000-3000 words"
	default:
		return "1000-1500 words"
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func keywordList(raw, fallback string) string {
	kw := ParseKeywords(raw)
	if len(kw) == 0 {
		return fallback
	}
	return strings.Join(kw, ", ")
}

// Build returns the user prompt for r. Unknown types fall back to a blog post.
func Build(r Request) string {
	switch r.Type {
	case "blog":
		switch r.Mode {
		case "outline":
			return blogOutline(r)
		case "headline":
			return blogHeadline(r)
		case "rewrite":
			return blogRewrite(r)
		}
		return blogGenerate(r)
	case "social":
		switch r.Platform {
		case "linkedin":
			return linkedinPost(r)
		case "instagram":
			return instagramCaption(r)
		case "facebook":
			return facebookPost(r)
		}
		return tweets(r)
	case "email":
		if r.Mode == "" || r.Mode == "generate" {
			return newsletter(r)
		}
		return promotionalEmail(r)
	case "caption":
		return captions(r)
	}
	return blogGenerate(r)
}

func blogGenerate(r Request) string {
	return fmt.Sprintf(`Write a %s blog post about "%s".

Requirements:
- Tone: %s
- Target keywords: %s
- Include an engaging introduction that hooks the reader
- Use clear H2 and H3 headings to structure the content
- Include actionable tips and insights
- End with a compelling conclusion and call-to-action
- Use bullet points and numbered lists where appropriate

Output the content in clean HTML format with proper heading tags (h2, h3), paragraphs (p), and lists (ul, ol).`,
		WordBand(r.Length), r.Topic, orDefault(r.Tone, "professional"),
		keywordList(r.Keywords, "use relevant keywords naturally"))
}

func blogOutline(r Request) string {
	return fmt.Sprintf(`Create a detailed blog post outline for "%s".

Target keywords: %s

Create an outline that includes:
1. A compelling headline (with 2-3 alternatives)
2. Introduction hook
3. 5-7 main sections with H2 headings
4. 2-3 subpoints for each section
5. Key takeaways section
6. Suggested call-to-action
7. Meta description (155 characters max)

Format as a structured outline with clear hierarchy.`,
		r.Topic, keywordList(r.Keywords, "none specified"))
}

func blogHeadline(r Request) string {
	return fmt.Sprintf(`Generate 10 compelling headlines for a blog post about "%s".

Keywords to consider: %s

Create headlines that:
1. Are 50-70 characters for optimal SEO
2. Include power words that drive clicks
3. Create curiosity or promise value
4. Include numbers where appropriate
5. Vary in style (how-to, list, question, statement)

Output as a numbered list.`,
		r.Topic, keywordList(r.Keywords, "none"))
}

func blogRewrite(r Request) string {
	return fmt.Sprintf(`Rewrite the following content to improve its quality and adjust the tone to be more %s.

Original content:
%s

Requirements:
- Maintain the core message and key points
- Improve clarity and readability
- Enhance engagement and flow
- Fix any grammar or spelling issues
- Keep approximately the same length`,
		orDefault(r.Tone, "professional"), r.ExistingContent)
}

func linkedinPost(r Request) string {
	return fmt.Sprintf(`Create a professional LinkedIn post about "%s".

Requirements:
- Tone: %s
- 150-300 words
- Start with a hook (first line is crucial)
- Use line breaks for readability
- Include a personal insight or story angle
- End with a question to encourage comments
- Add 3-5 relevant hashtags at the end

Format with proper line breaks for LinkedIn's display.`,
		r.Topic, orDefault(r.Tone, "professional"))
}

func instagramCaption(r Request) string {
	return fmt.Sprintf(`Write an engaging Instagram caption about "%s".

Requirements:
- Tone: %s
- 150-300 words
- Start with a hook that stops the scroll
- Tell a mini-story or share an insight
- Include a clear call-to-action
- Add 15-20 relevant hashtags (grouped at the end)
- Include emojis strategically`,
		r.Topic, orDefault(r.Tone, "casual"))
}

func facebookPost(r Request) string {
	return fmt.Sprintf(`Create an engaging Facebook post about "%s".

Requirements:
- Tone: %s
- 100-200 words
- Start with attention-grabbing first line
- Make it conversational and shareable
- Include a question to boost engagement
- Add a call-to-action
- Suggest an image description if relevant

Output the post text.`,
		r.Topic, orDefault(r.Tone, "casual"))
}

func tweets(r Request) string {
	return fmt.Sprintf(`Create 5 engaging tweets about "%s".

Requirements:
- Tone: %s
- Maximum 280 characters each
- Include relevant hashtags (2-3 max per tweet)
- Mix of formats: question, statement, tip, hook
- Encourage engagement
- Include emojis where appropriate

Output as a numbered list.`,
		r.Topic, orDefault(r.Tone, "casual"))
}

func newsletter(r Request) string {
	return fmt.Sprintf(`Write a newsletter email about "%s".

Requirements:
- Tone: %s
- Subject line (50 characters max) with 2 alternatives
- Preview text (90 characters max)
- Greeting
- Brief intro (2-3 sentences)
- Main content (3-4 paragraphs)
- Clear CTA button text
- Professional sign-off

Format with clear sections.`,
		r.Topic, orDefault(r.Tone, "friendly"))
}

func promotionalEmail(r Request) string {
	return fmt.Sprintf(`Write a promotional email about "%s".

Requirements:
- Tone: %s
- Subject line with urgency (3 alternatives)
- Preview text that creates curiosity
- Opening hook
- Problem statement
- Solution presentation
- Benefits (bullet points)
- Social proof placeholder
- Urgency element
- Clear CTA
- P.S. line

Format for high conversion rates.`,
		r.Topic, orDefault(r.Tone, "friendly"))
}

func captions(r Request) string {
	return fmt.Sprintf(`Create 5 short captions for %s about "%s".

Requirements:
- Tone: %s
- Keep each caption concise and punchy
- Include relevant emojis
- Add 2-3 hashtags per caption
- Make them shareable and engaging

Output as a numbered list.`,
		orDefault(r.Platform, "social media"), r.Topic, orDefault(r.Tone, "casual"))
}

// Ideas asks for exactly n ideas as a bare JSON array. A non-positive n
// means DefaultIdeaCount.
func Ideas(topic string, n int) string {
	if n <= 0 {
		n = DefaultIdeaCount
	}
	return fmt.Sprintf(`You are a content strategist. Generate %d unique content ideas for the topic: "%s"

For each idea, provide a JSON object with these exact fields:
- title: A compelling, specific headline (50-70 characters)
- description: Brief description of the content angle (1-2 sentences)
- keywords: Array of 4 relevant keywords
- searchVolume: Estimated monthly searches (number between 1000-20000)
- competition: One of "low", "medium", or "high"
- searchIntent: One of "informational", "commercial", "transactional", or "navigational"
- score: Content opportunity score from 60-95
- source: One of "trending", "keyword", "question", or "competitor"

Return ONLY a valid JSON array with %d idea objects. No other text or explanation.`, n, topic, n)
}
