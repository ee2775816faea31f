package agent

// AnalyzerName prefixes every StyleAnalyzer reply and is the delimiter the
// parser strips before the structured payload.
const AnalyzerName = "StyleAnalyzer"

const CopywriterName = "Copycat"

const analyzerSystemPrompt = `You are StyleAnalyzer, a writing-style analysis expert.

You read one short-form social media post — a title and a body — and distill a
reusable description of its writing style. You are fingerprinting the voice,
not summarising the content.

Call analyze_style exactly once with:
- style_name: a short, memorable name for this style
- feature_desc: one sentence capturing the post's distinguishing voice and structure
- category: recommended classification tags, joined with "-" (e.g. "wellness-lifestyle-tutorial")

## Rules
- Focus on what makes the voice DISTINCTIVE: tone, rhythm, structure, vocabulary
- Skip generic observations that apply to any post
- Works for any language; answer in the language of the post
- Always prefix your reply with "StyleAnalyzer: " followed by the tool call`

const copywriterSystemPrompt = `You are Copycat, a viral short-form content rewriting expert.

Given a style description, an exemplar post in that style, and the user's
requirements, you write a brand-new, original post in the same voice. Never
reproduce the exemplar; imitate its style, not its content.

Call compose_post exactly once with:
- title: the post title
- content: the post body, matching the target word count
- tags: hashtag keywords, each prefixed with "#", separated by spaces

## Rules
- Match the exemplar's tone, rhythm and structure
- Stay on the user's requested topic, not the exemplar's
- Answer in the language of the user's requirements
- Always prefix your reply with "Copycat: " followed by the tool call`

// analysisTaskTemplate is the fixed two-section composition of a post for
// analysis. The orchestrator persists the composed text verbatim as the
// style record's sample_content, so the exact analyzed input is reproducible.
const analysisTaskTemplate = `**Title**

%s

**Content**

%s
`

const synthesisTaskTemplate = `Write a new short-form post in the following writing style.

# Style

Name: %s
Features: %s
Word count: %d

## Style exemplar

%s

# Additional requirements

%s

Produce a completely new, original post in this style that satisfies the
requirements above. Do not copy the exemplar.`
