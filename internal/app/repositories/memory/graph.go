package memory

import "github.com/vdab/fietsen/internal/app/models"

// graph materializes rows into entities for one read, sharing campuses and
// responsibilities per id the way one PostgreSQL query result does.
type graph struct {
	t                *tables
	campuses         map[int64]*models.Campus
	responsibilities map[int64]*models.Responsibility
}

func newGraph(t *tables) *graph {
	return &graph{
		t:                t,
		campuses:         make(map[int64]*models.Campus),
		responsibilities: make(map[int64]*models.Responsibility),
	}
}

func (g *graph) campus(id int64, loaded bool) *models.Campus {
	if c, ok := g.campuses[id]; ok {
		return c
	}
	var c *models.Campus
	if record, ok := g.t.campuses[id]; ok && loaded {
		c = models.RestoreCampus(id, record.name, record.address)
	} else {
		c = models.CampusReference(id)
	}
	g.campuses[id] = c
	return c
}

func (g *graph) responsibility(id int64) *models.Responsibility {
	if r, ok := g.responsibilities[id]; ok {
		return r
	}
	r := models.RestoreResponsibility(id, g.t.responsibilities[id])
	g.responsibilities[id] = r
	return r
}

func (g *graph) instructor(id int64, loadCampus bool) *models.Instructor {
	record := g.t.instructors[id]
	i := models.RestoreInstructor(id, record.firstName, record.lastName, record.salary,
		record.email, record.gender, g.campus(record.campusID, loadCampus))
	for _, nickname := range record.nicknames {
		i.AddNickname(nickname)
	}
	for _, responsibilityID := range record.responsibilities {
		i.AddResponsibility(g.responsibility(responsibilityID))
	}
	return i
}
