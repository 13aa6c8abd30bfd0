package mind

import (
	"regexp"
	"strings"
)

// Slot-filler vocabularies. Values on the right are the canonical tags handed
// to actuators; keys are what people actually type.
var (
	emotionKeywords = map[string]string{
		"happy": "happy", "smiling": "happy", "joyful": "happy", "cheerful": "happy",
		"sad": "sad", "crying": "sad", "unhappy": "sad",
		"angry": "angry", "mad": "angry", "furious": "angry",
		"scared": "scared", "afraid": "scared",
		"surprised": "surprised", "shocked": "surprised",
		"loving": "loving", "affectionate": "loving", "romantic": "loving",
		"excited": "excited", "thrilled": "excited",
		"calm": "calm", "relaxed": "calm", "peaceful": "calm",
	}
	environmentKeywords = map[string]string{
		"beach": "beach", "ocean": "beach", "seaside": "beach",
		"park": "park", "forest": "forest", "woods": "forest",
		"city": "city", "street": "city", "downtown": "city",
		"home": "home", "indoors": "home", "room": "home",
		"mountains": "mountains", "mountain": "mountains",
		"cafe": "cafe", "outdoors": "outdoors", "outside": "outdoors",
		"sunset": "sunset", "night": "night",
	}
	activityKeywords = map[string]string{
		"dancing": "dancing", "reading": "reading", "cooking": "cooking",
		"gaming": "gaming", "walking": "walking", "running": "running",
		"swimming": "swimming", "singing": "singing", "painting": "painting",
		"relaxing": "relaxing", "working": "working", "studying": "studying",
	}
	poseKeywords = map[string]string{
		"standing": "standing", "sitting": "sitting", "lying": "lying",
		"waving": "waving", "jumping": "jumping", "posing": "posing",
		"portrait": "portrait", "close-up": "close-up", "closeup": "close-up",
		"selfie": "selfie", "full-body": "full-body",
	}
)

// Slash-style command prefixes, after the original companion's chat commands.
var (
	imageCommandRe = regexp.MustCompile(`^/(selfie|image|picture|photo|portrait)\b\s*(.*)$`)
	postCommandRe  = regexp.MustCompile(`^/post\b\s*(.*)$`)
	sayCommandRe   = regexp.MustCompile(`^/say\b\s*(.*)$`)

	// Natural-language image requests: "send me a selfie at the beach",
	// "show me a picture of you smiling".
	naturalImageRe = regexp.MustCompile(`\b(send|show|draw|generate|make|take)\b.{0,30}\b(selfie|picture|photo|image|portrait|pic)\b`)

	naturalPostRe = regexp.MustCompile(`\b(post|tweet|share)\b.{0,40}\b(later|today|tonight|schedule|social|followers|timeline)\b|\bschedule\b.{0,20}\bpost\b`)

	naturalSayRe = regexp.MustCompile(`^(say|tell (them|everyone|us))\b\s*(.*)$`)
)

// ParseCommand turns a free-form directive into a structured request. Pure and
// side-effect-free. Returns nil for ordinary chat input — not a command is not
// an error. When more than one intent matches, the one with more filled slots
// wins (most specific); remaining ties fall to image > post > speech.
func ParseCommand(text string) *CommandRequest {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	lower := strings.ToLower(trimmed)

	var matches []CommandRequest

	if m := imageCommandRe.FindStringSubmatch(lower); m != nil {
		req := CommandRequest{Intent: IntentRequestImage}
		fillSlots(&req, m[2])
		if m[1] == "selfie" || m[1] == "portrait" {
			if req.Pose == "" {
				req.Pose = poseKeywords[m[1]]
			}
		}
		matches = append(matches, req)
	} else if naturalImageRe.MatchString(lower) {
		req := CommandRequest{Intent: IntentRequestImage}
		fillSlots(&req, lower)
		matches = append(matches, req)
	}

	if m := postCommandRe.FindStringSubmatch(lower); m != nil {
		req := CommandRequest{Intent: IntentSchedulePost, Text: strings.TrimSpace(m[1])}
		fillSlots(&req, m[1])
		matches = append(matches, req)
	} else if naturalPostRe.MatchString(lower) {
		req := CommandRequest{Intent: IntentSchedulePost}
		fillSlots(&req, lower)
		matches = append(matches, req)
	}

	if m := sayCommandRe.FindStringSubmatch(lower); m != nil {
		req := CommandRequest{Intent: IntentDirectSpeech, Text: strings.TrimSpace(m[1])}
		fillSlots(&req, m[1])
		matches = append(matches, req)
	} else if m := naturalSayRe.FindStringSubmatch(lower); m != nil {
		req := CommandRequest{Intent: IntentDirectSpeech, Text: strings.TrimSpace(m[3])}
		fillSlots(&req, m[3])
		matches = append(matches, req)
	}

	if len(matches) == 0 {
		return nil
	}

	// Most specific intent wins; the append order above encodes the fixed
	// tie-break (image > post > speech).
	best := matches[0]
	for _, m := range matches[1:] {
		if m.filledSlots() > best.filledSlots() {
			best = m
		}
	}
	return &best
}

// fillSlots scans text for slot keywords. Unmatched slots stay empty, which
// means "auto-complete from the current emotion state" downstream — a partial
// directive is never a parse failure.
func fillSlots(req *CommandRequest, text string) {
	for _, word := range tokenize(text) {
		if req.Emotion == "" {
			if v, ok := emotionKeywords[word]; ok {
				req.Emotion = v
				continue
			}
		}
		if req.Environment == "" {
			if v, ok := environmentKeywords[word]; ok {
				req.Environment = v
				continue
			}
		}
		if req.Activity == "" {
			if v, ok := activityKeywords[word]; ok {
				req.Activity = v
				continue
			}
		}
		if req.Pose == "" {
			if v, ok := poseKeywords[word]; ok {
				req.Pose = v
			}
		}
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return false
		}
		return true
	})
}
