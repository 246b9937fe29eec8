package geosuggest

import (
	"testing"

	check "gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

// EngineSuite exercises the concrete end-to-end scenarios from spec §8
// against the fixture bundle in fixtures_test.go, in the teacher's
// check.v1 suite style (andreiashu-geobed/geobed_test.go).
type EngineSuite struct {
	engine   *Engine
	ruEngine *Engine
}

var _ = check.Suite(&EngineSuite{})

func (s *EngineSuite) SetUpSuite(c *check.C) {
	s.engine = NewEngine(mustBuildTestIndex(nil))
	s.ruEngine = NewEngine(mustBuildTestIndex([]string{"ru"}))
}

func (s *EngineSuite) TestSuggestExact(c *check.C) {
	results := s.engine.Suggest("voronezh", 1, nil, nil)
	c.Assert(results, check.HasLen, 1)
	c.Assert(results[0].Name, check.Equals, "Voronezh")
	c.Assert(results[0].Country, check.NotNil)
	c.Assert(results[0].Country.Name, check.Equals, "Russia")
	c.Assert(results[0].Admin1, check.NotNil)
	c.Assert(results[0].Admin1.Name, check.Equals, "Voronezj")
}

func (s *EngineSuite) TestSuggestLocalised(c *check.C) {
	results := s.ruEngine.Suggest("Voronezh", 1, nil, nil)
	c.Assert(results, check.HasLen, 1)
	city := results[0]
	c.Assert(city.Names["ru"], check.Equals, "Воронеж")
	c.Assert(city.CountryNames["ru"], check.Equals, "Россия")
	c.Assert(city.Admin1Names["ru"], check.Equals, "Воронежская область")
}

func (s *EngineSuite) TestSuggestCountryFilter(c *check.C) {
	empty := s.engine.Suggest("Beverley", 1, nil, []string{"RU"})
	c.Assert(empty, check.HasLen, 0)

	results := s.engine.Suggest("Beverley", 1, nil, []string{"GB"})
	c.Assert(results, check.HasLen, 1)
	c.Assert(results[0].Name, check.Equals, "Beverley")
	c.Assert(results[0].Admin2, check.NotNil)
	c.Assert(results[0].Admin2.Name, check.Equals, "East Riding of Yorkshire")

	ruResults := s.ruEngine.Suggest("Beverley", 1, nil, []string{"GB"})
	c.Assert(ruResults, check.HasLen, 1)
	c.Assert(ruResults[0].Admin2Names["ru"], check.Equals, "Ист-Райдинг-оф-Йоркшир")
}

func (s *EngineSuite) TestReverseExact(c *check.C) {
	results := s.engine.Reverse(51.6372, 39.1937, 1, nil, nil)
	c.Assert(results, check.HasLen, 1)
	c.Assert(results[0].City.Name, check.Equals, "Voronezh")
}

func (s *EngineSuite) TestReversePopulationWeight(c *check.C) {
	k := 5e-9

	withoutK := s.engine.Reverse(55.67738, 37.76006, 5, nil, nil)
	c.Assert(withoutK, check.Not(check.HasLen), 0)
	c.Assert(withoutK[0].City.Name, check.Equals, "Lyublino")

	withK := s.engine.Reverse(55.67738, 37.76006, 5, &k, nil)
	c.Assert(withK, check.Not(check.HasLen), 0)
	c.Assert(withK[0].City.Name, check.Equals, "Moscow")

	secondPoint := s.engine.Reverse(55.67719, 37.89322, 5, &k, nil)
	c.Assert(secondPoint, check.Not(check.HasLen), 0)
	c.Assert(secondPoint[0].City.Name, check.Equals, "Lyubertsy")
}

func (s *EngineSuite) TestCapitalAndCountryInfo(c *check.C) {
	moscow, ok := s.engine.Capital("RU")
	c.Assert(ok, check.Equals, true)
	c.Assert(moscow.Name, check.Equals, "Moscow")

	rec, ok := s.ruEngine.CountryInfo("rs")
	c.Assert(ok, check.Equals, true)
	c.Assert(rec.Names["ru"], check.Equals, "Сербия")
	c.Assert(rec.CapitalNames["ru"], check.Equals, "Белград")
}

func (s *EngineSuite) TestReverseOrderingWithoutK(c *check.C) {
	results := s.engine.Reverse(55.677, 37.8, 5, nil, nil)
	for i := 1; i < len(results); i++ {
		c.Assert(results[i-1].Distance <= results[i].Distance, check.Equals, true)
	}
}

func (s *EngineSuite) TestSuggestLimitZero(c *check.C) {
	results := s.engine.Suggest("voronezh", 0, nil, nil)
	c.Assert(results, check.HasLen, 0)
}

func (s *EngineSuite) TestSuggestEmptyPattern(c *check.C) {
	results := s.engine.Suggest("", 10, nil, nil)
	c.Assert(results, check.HasLen, 0)
}

func (s *EngineSuite) TestReverseLimitZero(c *check.C) {
	results := s.engine.Reverse(51.6372, 39.1937, 0, nil, nil)
	c.Assert(results, check.HasLen, 0)
}

func (s *EngineSuite) TestSuggestMonotonicInLimit(c *check.C) {
	small := s.engine.Suggest("o", 1, nil, nil)
	large := s.engine.Suggest("o", 3, nil, nil)
	c.Assert(len(large) >= len(small), check.Equals, true)
	for i, city := range small {
		c.Assert(city.ID, check.Equals, large[i].ID)
	}
}

func (s *EngineSuite) TestGetUnknownID(c *check.C) {
	_, ok := s.engine.Get(0xFFFFFFFF)
	c.Assert(ok, check.Equals, false)
}

func (s *EngineSuite) TestCapitalUnknownCountry(c *check.C) {
	_, ok := s.engine.Capital("ZZ")
	c.Assert(ok, check.Equals, false)
}
