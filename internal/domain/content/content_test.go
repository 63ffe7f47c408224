package content

import (
	"encoding/json"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func news(slug, date string) NewsArticle {
	return NewsArticle{ID: ItemID(slug), Slug: slug, Date: date, Title: "News " + slug}
}

func result(slug, date string) ResultArticle {
	return ResultArticle{ID: ItemID(slug), Slug: slug, Date: date, Title: "Result " + slug}
}

func slugsOfNews(items []NewsArticle) []string {
	out := make([]string, len(items))
	for i, a := range items {
		out[i] = a.Slug
	}
	return out
}

func TestItemIDUnmarshal(t *testing.T) {
	Convey("Given article JSON with different id kinds", t, func() {
		var c NewsCollection
		err := json.Unmarshal([]byte(`{"articles":[{"id":12,"slug":"a"},{"id":"n-13","slug":"b"},{"id":null,"slug":"c"}]}`), &c)

		Convey("Then numbers and strings should both decode", func() {
			So(err, ShouldBeNil)
			So(c.Articles[0].ID, ShouldEqual, ItemID("12"))
			So(c.Articles[1].ID, ShouldEqual, ItemID("n-13"))
			So(c.Articles[2].ID, ShouldEqual, ItemID(""))
		})

		Convey("Then other kinds should fail", func() {
			var bad NewsCollection
			So(json.Unmarshal([]byte(`{"articles":[{"id":{"x":1}}]}`), &bad), ShouldNotBeNil)
		})
	})
}

func TestDateKey(t *testing.T) {
	Convey("Given content dates", t, func() {
		Convey("Then ISO dates should order chronologically", func() {
			So(DateKey("2024-05-12"), ShouldBeGreaterThan, DateKey("2024-05-11"))
			So(DateKey("2024-05-12T10:00:00+09:00"), ShouldBeGreaterThan, DateKey("2024-05-11"))
		})

		Convey("Then unparseable dates should map to zero", func() {
			So(DateKey(""), ShouldEqual, 0)
			So(DateKey("spring 2024"), ShouldEqual, 0)
		})

		Convey("Then display dates should use dots", func() {
			So(DisplayDate("2024-05-12"), ShouldEqual, "2024.05.12")
			So(DisplayDate("TBD"), ShouldEqual, "TBD")
		})
	})
}

func TestSortNews(t *testing.T) {
	Convey("Given news in file order", t, func() {
		items := []NewsArticle{
			news("old", "2023-04-01"),
			news("bad", "not a date"),
			news("new", "2024-06-01"),
			news("tie-1", "2024-01-01"),
			news("tie-2", "2024-01-01"),
		}

		SortNews(items)

		Convey("Then they should be most recent first with stable ties and bad dates last", func() {
			So(slugsOfNews(items), ShouldResemble, []string{"new", "tie-1", "tie-2", "old", "bad"})
		})
	})

	Convey("Given results in file order", t, func() {
		items := []ResultArticle{result("a", "2024-01-01"), result("b", "2024-03-01")}
		SortResults(items)
		So(items[0].Slug, ShouldEqual, "b")
	})
}

func TestNeighbours(t *testing.T) {
	Convey("Given a sorted collection", t, func() {
		items := []NewsArticle{news("c", "2024-03-01"), news("b", "2024-02-01"), news("a", "2024-01-01")}

		Convey("When asking for the middle item", func() {
			nav, found := Neighbours(items, "b", NewsSlug)

			Convey("Then previous should be newer and next older", func() {
				So(found, ShouldBeTrue)
				So(nav.Previous.Slug, ShouldEqual, "c")
				So(nav.Next.Slug, ShouldEqual, "a")
			})
		})

		Convey("When asking for the boundaries", func() {
			first, _ := Neighbours(items, "c", NewsSlug)
			last, _ := Neighbours(items, "a", NewsSlug)

			Convey("Then the missing side should be nil", func() {
				So(first.Previous, ShouldBeNil)
				So(first.Next.Slug, ShouldEqual, "b")
				So(last.Next, ShouldBeNil)
				So(last.Previous.Slug, ShouldEqual, "b")
			})
		})

		Convey("When the slug is unknown", func() {
			nav, found := Neighbours(items, "zzz", NewsSlug)
			So(found, ShouldBeFalse)
			So(nav.Previous, ShouldBeNil)
			So(nav.Next, ShouldBeNil)
		})

		Convey("When finding by slug", func() {
			So(FindNews(items, "b").Title, ShouldEqual, "News b")
			So(FindNews(items, "nope"), ShouldBeNil)
			So(FindResult([]ResultArticle{result("r", "2024-01-01")}, "r"), ShouldNotBeNil)
			So(FindResult(nil, "r"), ShouldBeNil)
		})
	})
}

func TestDuplicateSlugs(t *testing.T) {
	Convey("Given a collection with a repeated slug", t, func() {
		items := []NewsArticle{news("a", ""), news("b", ""), news("a", ""), news("a", "")}
		So(DuplicateSlugs(items, NewsSlug), ShouldResemble, []string{"a"})
		So(DuplicateSlugs([]NewsArticle{news("x", "")}, NewsSlug), ShouldBeEmpty)
	})
}

func TestLatest(t *testing.T) {
	Convey("Given news and results", t, func() {
		newsItems := []NewsArticle{news("n1", "2024-05-01"), news("n2", "2024-03-01")}
		resultItems := []ResultArticle{result("r1", "2024-04-01"), result("r2", "2024-05-01"), result("r3", "garbage")}

		newsTopics := NewsTopics(newsItems, "2024")
		resultTopics := ResultTopics(resultItems, "2024")

		Convey("When asking for the latest three", func() {
			got := Latest(3, newsTopics, resultTopics)

			Convey("Then they should be merged by date with news first on ties", func() {
				So(got, ShouldHaveLength, 3)
				So(got[0].Link, ShouldEqual, "/topics/news/2024/n1")
				So(got[1].Link, ShouldEqual, "/topics/results/2024/r2")
				So(got[2].Link, ShouldEqual, "/topics/results/2024/r1")
				So(got[0].Type, ShouldEqual, TypeNews)
				So(got[1].Type, ShouldEqual, TypeResult)
				So(got[0].Date, ShouldEqual, "2024.05.01")
			})
		})

		Convey("When the limit exceeds the total", func() {
			got := Latest(10, newsTopics, resultTopics)

			Convey("Then every item should be returned with bad dates last", func() {
				So(got, ShouldHaveLength, 5)
				So(got[4].Link, ShouldEqual, "/topics/results/2024/r3")
				So(got[4].Date, ShouldEqual, "garbage")
			})
		})

		Convey("When the limit is not positive", func() {
			So(Latest(0, newsTopics), ShouldBeEmpty)
			So(Latest(-1, newsTopics), ShouldNotBeNil)
		})

		Convey("When there are no sources", func() {
			So(Latest(3), ShouldBeEmpty)
		})
	})
}

func TestExcerpt(t *testing.T) {
	Convey("Given summaries", t, func() {
		Convey("Then HTML should be reduced to text", func() {
			So(Excerpt("<p>Won the <b>Hakone</b>\n qualifier</p>"), ShouldEqual, "Won the Hakone qualifier")
		})

		Convey("Then plain text should only collapse whitespace", func() {
			So(Excerpt("  two   spaces \n"), ShouldEqual, "two spaces")
			So(Excerpt(""), ShouldEqual, "")
		})

		Convey("Then long text should be cut with an ellipsis", func() {
			long := strings.Repeat("駅", 200)
			got := Excerpt(long)
			So([]rune(got), ShouldHaveLength, maxExcerptRunes+1)
			So(strings.HasSuffix(got, "…"), ShouldBeTrue)
		})
	})
}

func TestArticleJSON(t *testing.T) {
	Convey("Given an article with navigation", t, func() {
		prev := news("p", "2024-02-01")
		a := Article[NewsArticle]{Article: news("x", "2024-01-01"), Navigation: Navigation[NewsArticle]{Previous: &prev}}

		b, err := json.Marshal(a)

		Convey("Then navigation fields should sit beside the article", func() {
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"article":{`)
			So(string(b), ShouldContainSubstring, `"previous":{`)
			So(string(b), ShouldContainSubstring, `"next":null`)
		})
	})
}
