package driver

const (
	SaveRunQuery = `
		MERGE (r:Run {uuid: $uuid})
		SET r.entity = $entity,
			r.created_at = $created_at,
			r.months = $months,
			r.has_adverse_news = $has_adverse_news,
			r.highest_risk_score = $highest_risk_score,
			r.total_articles = $total_articles,
			r.narrative = $narrative
		RETURN r.uuid AS uuid
	`

	SaveFindingQuery = `
		MATCH (r:Run {uuid: $run_uuid})
		MERGE (f:Finding {uuid: $uuid})
		SET f.url = $url,
			f.title = $title,
			f.summary = $summary,
			f.overall_score = $overall_score,
			f.reliability_score = $reliability_score,
			f.relevancy_score = $relevancy_score,
			f.composite_score = $composite_score,
			f.created_at = $created_at
		MERGE (r)-[:FOUND]->(f)
		RETURN f.uuid AS uuid
	`

	RecentRunsQuery = `
		MATCH (r:Run)
		RETURN r.uuid AS uuid,
			r.entity AS entity,
			r.created_at AS created_at,
			r.has_adverse_news AS has_adverse_news,
			r.highest_risk_score AS highest_risk_score,
			r.total_articles AS total_articles
		ORDER BY r.created_at DESC
		LIMIT $limit
	`
)
