package services

import (
	"ReframeGo/models"
	"math"
	"sort"
)

// Aggregation is pure: it groups an already-fetched slice of events and
// touches nothing else. Buckets exist only for keys that actually
// occur; a day without events has no bucket.

// AggregateByDay groups events by UTC calendar day and returns one
// bucket per day with a count and the average severity, sorted by date
// ascending.
func AggregateByDay(events []models.Event) []models.DayBucket {
	type acc struct {
		count    int
		severity int
	}
	byDay := make(map[string]*acc)
	for _, e := range events {
		day := e.Timestamp.UTC().Format("2006-01-02")
		a := byDay[day]
		if a == nil {
			a = &acc{}
			byDay[day] = a
		}
		a.count++
		a.severity += e.Severity
	}

	buckets := make([]models.DayBucket, 0, len(byDay))
	for day, a := range byDay {
		avg := float64(a.severity) / float64(a.count)
		buckets = append(buckets, models.DayBucket{
			Date:        day,
			Count:       a.count,
			AvgSeverity: math.Round(avg*100) / 100,
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date < buckets[j].Date
	})
	return buckets
}

// AggregateByTrigger counts events per raw trigger text. No fuzzy
// merging of near-duplicates. Sorted by count descending, ties by
// trigger ascending.
func AggregateByTrigger(events []models.Event) []models.TriggerCount {
	byTrigger := make(map[string]int)
	for _, e := range events {
		byTrigger[e.Trigger]++
	}

	counts := make([]models.TriggerCount, 0, len(byTrigger))
	for trigger, count := range byTrigger {
		counts = append(counts, models.TriggerCount{Trigger: trigger, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Trigger < counts[j].Trigger
	})
	return counts
}

// AggregateByEmotion counts events per classifier label. Events that
// never got a label are excluded. Sorted by count descending, ties by
// emotion ascending.
func AggregateByEmotion(events []models.Event) []models.EmotionCount {
	byEmotion := make(map[string]int)
	for _, e := range events {
		if e.Emotion == nil {
			continue
		}
		byEmotion[*e.Emotion]++
	}

	counts := make([]models.EmotionCount, 0, len(byEmotion))
	for emotion, count := range byEmotion {
		counts = append(counts, models.EmotionCount{Emotion: emotion, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Emotion < counts[j].Emotion
	})
	return counts
}
