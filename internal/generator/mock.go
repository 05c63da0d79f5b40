package generator

import (
	"context"
	"strings"
	"time"
)

// MockGenerator returns canned drafts chosen by what the prompt asks for.
// It lets the service run without a provider key.
type MockGenerator struct {
	// Delay simulates provider latency. Zero answers immediately.
	Delay time.Duration
}

func (m *MockGenerator) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}

	p := req.Prompt
	switch {
	case strings.Contains(p, "JSON array"):
		return mockIdeas, nil
	case strings.Contains(p, "blog post"):
		return mockBlog, nil
	case strings.Contains(p, "tweet"):
		return mockTweets, nil
	case strings.Contains(p, "LinkedIn"):
		return mockLinkedIn, nil
	}
	return "Generated content based on your specifications. This is a placeholder for the text a completion provider would produce.", nil
}

const mockBlog = `<h2>Introduction</h2>
<p>In today's fast-paced digital landscape, staying ahead requires more than just keeping up with trends. It demands a strategic approach to content creation and distribution.</p>

<h2>Understanding the Fundamentals</h2>
<p>Before diving into advanced strategies, it's essential to grasp the core principles that drive successful content marketing.</p>

<h3>Know Your Audience</h3>
<p>Research their pain points, preferences, and behaviors to craft messages that truly connect.</p>

<h3>Consistency is Key</h3>
<p>Regular publishing schedules help build audience expectations and improve search engine rankings.</p>

<h2>Advanced Strategies for Growth</h2>
<ul>
<li>Leverage data analytics to inform content decisions</li>
<li>Implement A/B testing for headlines and CTAs</li>
<li>Build strategic partnerships for content distribution</li>
<li>Repurpose content across multiple platforms</li>
</ul>

<h2>Conclusion</h2>
<p><strong>Ready to take your content to the next level? Start implementing these strategies today!</strong></p>`

const mockTweets = `1. Just discovered a game-changer for productivity! Here's what I learned... #Productivity #GrowthMindset

2. The secret to success isn't working harder, it's working smarter. Here's how #Success #Tips

3. What's the one tool you can't live without? Drop it below! #Question #Community

4. Data doesn't lie: These 3 strategies increased our output by 40%. Thread #DataDriven

5. Monday motivation: Every expert was once a beginner. Keep pushing! #MondayMotivation`

const mockLinkedIn = `I used to think working 80-hour weeks was the path to success.

Then I burned out. Hard.

Here's what I learned after rebuilding from scratch:

- Productivity isn't about hours, it's about energy
- Strategic breaks boost creativity
- Saying "no" is often the most productive thing you can do

Now I achieve more in 40 focused hours than I ever did in 80 scattered ones.

What's your biggest productivity lesson? Share below.

#Productivity #Leadership #WorkLifeBalance #Growth`

const mockIdeas = "```json\n" + `[
  {"title": "10 AI Tools That Will Transform Your Workflow", "description": "A practical tour of tools that save hours every week.", "keywords": ["AI tools", "productivity", "automation", "workflow"], "searchVolume": 12500, "competition": "medium", "searchIntent": "informational", "score": 85, "source": "trending"},
  {"title": "How to Measure Content Marketing ROI", "description": "The metrics that actually matter and how to track them.", "keywords": ["content marketing", "ROI", "metrics", "analytics"], "searchVolume": 6800, "competition": "low", "searchIntent": "commercial", "score": 91, "source": "question"},
  {"title": "The Complete Guide to Remote Team Management", "description": "Best practices for leading distributed teams.", "keywords": ["remote work", "team management", "leadership", "productivity"], "searchVolume": 15300, "competition": "high", "searchIntent": "informational", "score": 72, "source": "competitor"},
  {"title": "Building a Content Calendar That Sticks", "description": "A repeatable planning routine for small marketing teams.", "keywords": ["content calendar", "planning", "marketing", "scheduling"], "searchVolume": 4200, "competition": "low", "searchIntent": "transactional", "score": 80, "source": "keyword"}
]` + "\n```"
