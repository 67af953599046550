package components

import "distrimed/internal/domain"

// distributionsLoadedMsg carries rows for the refresh key that requested them
type distributionsLoadedMsg struct {
	key  int
	rows []domain.Distribution
}

type materialsLoadedMsg struct {
	key  int
	rows []domain.Material
}

// detail results carry the reload sequence that requested them
type summaryLoadedMsg struct {
	seq     int
	code    int
	summary domain.RepresentativeSummary
	err     error
}

type materialLoadedMsg struct {
	seq           int
	id            string
	material      domain.Material
	distributions []domain.Distribution
	err           error
}
