package metrics

// DatePoint is one sample of a date-keyed series
type DatePoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// SummaryCard is a headline KPI with its change versus the previous period
type SummaryCard struct {
	Title  string `json:"title"`
	Value  Value  `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"` // up|down
	Icon   string `json:"icon,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Engagement

type Engagement struct {
	TotalPosts          int               `json:"total_posts"`
	TotalComments       int               `json:"total_comments"`
	EngagementOverTime  []ActivityPoint   `json:"engagement_over_time"`
	PeakEngagementHours []HourActivity    `json:"peak_engagement_hours"`
	TopPerformingPosts  []TopPost         `json:"top_performing_posts"`
	MetricsSummary      []SummaryCard     `json:"metrics_summary"`
	EngagementByType    []PostTypeMetrics `json:"engagement_by_post_type"`
}

// ActivityPoint counts posts and comments for one day
type ActivityPoint struct {
	Date     string `json:"date"`
	Posts    int    `json:"posts"`
	Comments int    `json:"comments"`
}

type HourActivity struct {
	Hour     string `json:"hour"`
	Activity int    `json:"activity"`
}

type TopPost struct {
	MediaID  Value   `json:"media_id"`
	Comments int     `json:"comments"`
	Caption  *string `json:"media_caption"`
}

type PostTypeMetrics struct {
	Type       string `json:"type"`
	Engagement int    `json:"engagement"`
}

// Buyer intent

type BuyerIntent struct {
	HighIntentUsers       int                    `json:"high_intent_users_count"`
	PredictedRevenue      string                 `json:"predicted_revenue"`
	ConversionRate        string                 `json:"conversion_rate"`
	ActiveProspects       int                    `json:"active_prospects"`
	IntentSignals         []IntentSignal         `json:"intent_signals"`
	ConversionPredictions []ConversionPrediction `json:"conversion_predictions"`
	IntentCategories      []IntentCategory       `json:"intent_categories"`
	IntentSignalTrends    []DatePoint            `json:"intent_signal_trends"`
	NextBestActions       []NextBestAction       `json:"next_best_actions"`
}

type IntentSignal struct {
	User           string   `json:"user"`
	Intent         string   `json:"intent"` // High|Medium|Low
	Score          int      `json:"score"`
	Signals        []string `json:"signals"`
	LastActivity   int      `json:"lastActivity"` // days ago
	PredictedValue string   `json:"predictedValue"`
}

type ConversionPrediction struct {
	Timeframe   string `json:"timeframe"`
	Probability int    `json:"probability"`
	Users       int    `json:"users"`
}

type IntentCategory struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Value    string `json:"value"`
}

type NextBestAction struct {
	Action       string `json:"action"`
	Users        int    `json:"users"`
	Priority     string `json:"priority"`
	ExpectedLift string `json:"expectedLift"`
}

// Advocates

type Advocates struct {
	CommunityHealth    []HealthMetric `json:"community_health"`
	TopAdvocates       []Advocate     `json:"top_advocates"`
	AdvocacyTiers      []AdvocacyTier `json:"advocacy_tiers"`
	UGCPerformance     []DatePoint    `json:"ugc_performance"`
	PerformanceRadar   []ScoredMetric `json:"advocate_performance_radar"`
	LoyaltyPerformance LoyaltyProgram `json:"loyalty_program_performance"`
}

type HealthMetric struct {
	Metric string `json:"metric"`
	Value  Value  `json:"value"`
	Change string `json:"change"`
	Icon   string `json:"icon,omitempty"`
}

type Advocate struct {
	User          string   `json:"user"`
	Name          string   `json:"name"`
	Tier          string   `json:"tier"`
	Score         int      `json:"score"`
	UGCCount      int      `json:"ugcCount"`
	Engagement    int      `json:"engagement"`
	Influence     int      `json:"influence"`
	LoyaltyPoints int      `json:"loyaltyPoints"`
	Activities    []string `json:"activities"`
}

type AdvocacyTier struct {
	Tier       string  `json:"tier"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color,omitempty"`
}

// ScoredMetric is one axis of a 0-100 profile
type ScoredMetric struct {
	Metric string `json:"metric"`
	Score  int    `json:"score"`
}

type LoyaltyProgram struct {
	PointsDistribution []PointsActivity   `json:"points_distribution"`
	RewardRedemptions  []RewardRedemption `json:"reward_redemptions"`
	ProgramImpact      []ImpactMetric     `json:"program_impact"`
}

type PointsActivity struct {
	Activity string `json:"activity"`
	Points   int    `json:"points"`
	Count    int    `json:"count"`
}

type RewardRedemption struct {
	Reward   string `json:"reward"`
	Redeemed int    `json:"redeemed"`
	Points   int    `json:"points"`
}

type ImpactMetric struct {
	Metric string `json:"metric"`
	Value  string `json:"value"`
	Trend  string `json:"trend"`
}

// Publishing

type Publishing struct {
	BestPostingTimes   []TimeSlot       `json:"best_posting_times"`
	EngagementForecast []DatePoint      `json:"engagement_forecast"`
	TrendingTopics     []TopicScore     `json:"trending_topics"`
	AIRecommendations  []Recommendation `json:"ai_recommendations"`
	UpcomingPosts      []ScheduledPost  `json:"upcoming_posts"`
}

type TimeSlot struct {
	Time       string `json:"time"`
	Engagement int    `json:"engagement"`
}

type TopicScore struct {
	Topic      string `json:"topic"`
	Engagement int    `json:"engagement"`
}

type Recommendation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	Action      string `json:"action"`
}

type ScheduledPost struct {
	Time    string `json:"time"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

// Diagnostics

type Diagnostics struct {
	UGCVolume         int             `json:"ugc_volume"`
	PerformanceTrends []ActivityPoint `json:"performance_trends"`
	CurrentMetrics    []TrackedMetric `json:"current_metrics"`
	Alerts            []Alert         `json:"diagnostic_alerts"`
	AudienceInsights  []AudienceSlice `json:"audience_insights"`
}

type TrackedMetric struct {
	Title    string `json:"title"`
	Current  string `json:"current"`
	Previous string `json:"previous"`
	Trend    string `json:"trend"`
	Target   string `json:"target"`
	Progress int    `json:"progress"`
}

type Alert struct {
	Type        string `json:"type"` // success|info|warning
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Icon        string `json:"icon,omitempty"`
}

type AudienceSlice struct {
	Metric     string `json:"metric"`
	Percentage int    `json:"percentage"`
	Change     string `json:"change"`
}

// Sentiment

type Sentiment struct {
	Overall            OverallSentiment    `json:"overall_sentiment"`
	Trends             []PeriodSentiment   `json:"sentiment_trends"`
	AdvocacyKeywords   []KeywordSentiment  `json:"advocacy_keywords"`
	KeywordPerformance []TopicScore        `json:"keyword_performance"`
	TopMentions        []Mention           `json:"top_mentions"`
	FeatureSentiment   []FeatureSentiment  `json:"feature_sentiment"`
	FeedbackCategories []CategorySentiment `json:"customer_feedback_categories"`
	Signals            []SentimentSignal   `json:"sentiment_signals"`
	ProductFeatures    []ProductFeature    `json:"product_features_sentiment"`
}

// Split is a positive/neutral/negative percentage breakdown
type Split struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

type OverallSentiment struct {
	Split
	Overall string `json:"overall"`
}

type PeriodSentiment struct {
	Period string `json:"period"`
	Split
}

type KeywordSentiment struct {
	Keyword     string `json:"keyword"`
	Mentions    int    `json:"mentions"`
	Sentiment   string `json:"sentiment"`
	Growth      string `json:"growth"`
	PositivePct int    `json:"positive_pct"`
	NegativePct int    `json:"negative_pct"`
	NeutralPct  int    `json:"neutral_pct"`
}

type Mention struct {
	Text       string `json:"text"`
	Sentiment  string `json:"sentiment"`
	Engagement int    `json:"engagement"`
	Platform   string `json:"platform"`
}

type FeatureSentiment struct {
	Feature string `json:"feature"`
	Split
}

type CategorySentiment struct {
	Category string `json:"category"`
	Split
}

type SentimentSignal struct {
	Signal  string `json:"signal"`
	Insight string `json:"insight"`
}

type ProductFeature struct {
	Feature string `json:"feature"`
	Split
	Praised   string `json:"praised"`
	PainPoint string `json:"painPoint"`
}

// Virality

type Virality struct {
	Score     int              `json:"virality_score_value"`
	Factors   []ViralityFactor `json:"virality_factors"`
	PastPosts []ViralPost      `json:"past_viral_posts"`
	Trends    []DatePoint      `json:"virality_trends"`
	Tips      []string         `json:"virality_tips"`
}

type ViralityFactor struct {
	Factor      string `json:"factor"`
	Score       int    `json:"score"`
	Description string `json:"description"`
}

type ViralPost struct {
	Content    string `json:"content"`
	Score      int    `json:"score"`
	Reach      string `json:"reach"`
	Engagement string `json:"engagement"`
	Shares     string `json:"shares"`
	Date       string `json:"date"`
}
