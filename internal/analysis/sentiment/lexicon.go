package sentiment

// Valence lexicon for financial headlines. Weights are graded on a -4..+4
// scale in the manner of published valence dictionaries; the scorer
// normalizes the summed valence into [-1, +1]. Entries are lowercase; the
// tokenizer strips punctuation before lookup.
var valences = map[string]float64{
	// strong bullish
	"surge": 3.1, "soar": 3.1, "skyrocket": 3.4, "breakout": 2.9,
	"bullish": 2.9, "rally": 2.7, "boom": 2.8, "triumph": 2.9,
	"outperform": 2.6, "record": 2.2, "breakthrough": 2.8,

	// moderate bullish
	"beat": 2.1, "beats": 2.1, "exceed": 2.0, "exceeds": 2.0,
	"upgrade": 2.2, "upgraded": 2.2, "upgrades": 2.2,
	"profit": 1.8, "profits": 1.8, "growth": 1.7, "gain": 1.8,
	"gains": 1.8, "jump": 1.9, "jumps": 1.9, "strong": 1.7,
	"boost": 1.8, "boosts": 1.8, "success": 1.8, "win": 1.8,
	"wins": 1.8, "improve": 1.6, "improves": 1.6, "rising": 1.6,
	"advance": 1.5, "climb": 1.6, "climbs": 1.6, "expansion": 1.5,
	"momentum": 1.4, "upside": 1.5, "recover": 1.4, "recovery": 1.5,
	"rebound": 1.5, "rebounds": 1.5, "dividend": 1.3, "buyback": 1.4,

	// mild bullish
	"positive": 1.2, "rise": 1.2, "rises": 1.2, "higher": 1.1,
	"increase": 1.1, "increases": 1.1, "better": 1.1, "good": 1.0,
	"solid": 1.1, "confident": 1.1, "opportunity": 0.9, "promising": 1.0,
	"attractive": 0.9, "resilient": 0.9, "steady": 0.7, "healthy": 0.8,
	"buy": 1.2, "accumulate": 1.0, "optimistic": 1.3, "upbeat": 1.3,

	// strong bearish
	"crash": -3.4, "plunge": -3.2, "plunges": -3.2, "collapse": -3.3,
	"plummet": -3.2, "plummets": -3.2, "catastrophic": -3.4,
	"disaster": -3.2, "crisis": -2.9, "bankruptcy": -3.1,
	"fraud": -3.2, "scam": -3.2, "tumble": -2.8, "tumbles": -2.8,
	"rout": -2.9, "panic": -2.8, "meltdown": -3.1,

	// moderate bearish
	"bearish": -2.6, "downgrade": -2.2, "downgraded": -2.2,
	"downgrades": -2.2, "warning": -2.0, "lawsuit": -2.1,
	"lawsuits": -2.1, "investigation": -1.8, "probe": -1.7,
	"miss": -2.0, "misses": -2.0, "missed": -2.0, "loss": -1.9,
	"losses": -1.9, "slump": -2.1, "slumps": -2.1, "decline": -1.8,
	"declines": -1.8, "deteriorate": -1.9, "underperform": -2.2,
	"fail": -2.0, "fails": -2.0, "weak": -1.7, "weakness": -1.7,
	"drop": -1.7, "drops": -1.7, "fall": -1.6, "falls": -1.6,
	"falling": -1.6, "selloff": -2.3, "sell": -1.4, "cut": -1.4,
	"cuts": -1.4, "default": -2.4, "recall": -1.8, "layoffs": -2.0,

	// mild bearish
	"concern": -1.2, "concerns": -1.2, "worry": -1.2, "worries": -1.2,
	"disappoint": -1.4, "disappoints": -1.4, "disappointing": -1.4,
	"uncertain": -1.1, "uncertainty": -1.1, "risky": -1.2,
	"problem": -1.1, "problems": -1.1, "issue": -0.9, "issues": -0.9,
	"risk": -1.0, "risks": -1.0, "threat": -1.2, "volatile": -1.0,
	"pressure": -1.0, "challenge": -0.9, "challenges": -0.9,
	"difficult": -1.0, "lower": -1.0, "negative": -1.2, "poor": -1.2,
	"slowdown": -1.3, "slow": -0.8, "doubt": -1.1, "doubts": -1.1,
}

// negations flip the valence of the words that follow them. The flip is
// dampened rather than total: "not good" is bad, but less bad than "bad".
var negations = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true,
	"nor": true, "without": true, "isn't": true, "wasn't": true,
	"aren't": true, "won't": true, "don't": true, "doesn't": true,
	"didn't": true, "can't": true, "cannot": true, "couldn't": true,
	"shouldn't": true, "wouldn't": true, "hasn't": true, "haven't": true,
}

// boosters scale the valence of the next scored word up or down.
var boosters = map[string]float64{
	"very": 0.293, "extremely": 0.293, "hugely": 0.293,
	"massively": 0.293, "sharply": 0.293, "significantly": 0.293,
	"substantially": 0.293, "dramatically": 0.293, "really": 0.267,
	"highly": 0.267, "strongly": 0.267,
	"slightly": -0.293, "somewhat": -0.293, "marginally": -0.293,
	"barely": -0.293, "mildly": -0.293, "modestly": -0.267,
}
