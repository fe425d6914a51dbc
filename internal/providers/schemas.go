package providers

// Response-body schemas, one per upstream. Validation happens at the adapter
// boundary so nothing downstream ever sees a structurally invalid payload.

const weatherSchema = `{
	"type": "object",
	"required": ["temp_c", "condition"],
	"properties": {
		"temp_c": {"type": "number"},
		"condition": {"type": "string"},
		"precip_chance": {"type": "number", "minimum": 0, "maximum": 1},
		"wind_kph": {"type": "number", "minimum": 0},
		"feels_like_c": {"type": "number"},
		"severe_warning": {"type": "boolean"}
	}
}`

const eventsSchema = `{
	"type": "object",
	"required": ["event_count"],
	"properties": {
		"event_count": {"type": "integer", "minimum": 0},
		"largest_attendance": {"type": "integer", "minimum": 0},
		"demand_multiplier": {"type": "number", "minimum": 0},
		"categories": {"type": "array", "items": {"type": "string"}}
	}
}`

const sentimentSchema = `{
	"type": "object",
	"required": ["polarity"],
	"properties": {
		"polarity": {"type": "number", "minimum": -1, "maximum": 1},
		"mention_count": {"type": "integer", "minimum": 0},
		"viral_posts": {"type": "integer", "minimum": 0}
	}
}`

const economicSchema = `{
	"type": "object",
	"required": ["consumer_confidence", "unemployment_rate"],
	"properties": {
		"consumer_confidence": {"type": "number", "minimum": 0},
		"unemployment_rate": {"type": "number", "minimum": 0},
		"inflation_rate": {"type": "number"}
	}
}`

const healthSchema = `{
	"type": "object",
	"required": ["risk_level"],
	"properties": {
		"risk_level": {"type": "string", "enum": ["low", "moderate", "high"]},
		"flu_activity": {"type": "number", "minimum": 0},
		"advisory_count": {"type": "integer", "minimum": 0}
	}
}`

const demographicsSchema = `{
	"type": "object",
	"properties": {
		"median_income": {"type": "number", "minimum": 0},
		"population_density": {"type": "number", "minimum": 0},
		"dining_index": {"type": "number", "minimum": 0}
	}
}`

const temporalSchema = `{
	"type": "object",
	"required": ["local_hour", "meal_period"],
	"properties": {
		"local_hour": {"type": "integer", "minimum": 0, "maximum": 23},
		"day_of_week": {"type": "string"},
		"meal_period": {"type": "string"},
		"is_weekend": {"type": "boolean"},
		"is_peak_hour": {"type": "boolean"}
	}
}`

const mediaSchema = `{
	"type": "object",
	"properties": {
		"article_count": {"type": "integer", "minimum": 0},
		"viral_mentions": {"type": "integer", "minimum": 0},
		"trending_topics": {"type": "array", "items": {"type": "string"}}
	}
}`

const socialSchema = `{
	"type": "object",
	"properties": {
		"trending_keywords": {"type": "array", "items": {"type": "string"}},
		"platform_reach": {"type": "integer", "minimum": 0},
		"engagement_score": {"type": "number", "minimum": 0, "maximum": 1},
		"venue_popularity": {"type": "object", "additionalProperties": {"type": "number"}}
	}
}`

const placesSchema = `{
	"type": "object",
	"required": ["results"],
	"properties": {
		"results": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name"],
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"},
					"rating": {"type": "number", "minimum": 0, "maximum": 5},
					"user_ratings_total": {"type": "integer", "minimum": 0},
					"price_level": {"type": "integer", "minimum": 0, "maximum": 4},
					"distance_m": {"type": "number", "minimum": 0},
					"types": {"type": "array", "items": {"type": "string"}},
					"open_now": {"type": "boolean"},
					"delivery": {"type": "boolean"},
					"dine_in": {"type": "boolean"},
					"popularity": {"type": "number", "minimum": 0, "maximum": 1}
				}
			}
		}
	}
}`

const narrativeSchema = `{
	"type": "object",
	"required": ["narrative"],
	"properties": {
		"narrative": {"type": "string", "minLength": 1}
	}
}`
