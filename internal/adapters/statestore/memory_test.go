package statestore_test

import (
	"context"
	"testing"
	"time"

	statestore "github.com/DubjamMusic/hustlecodex/internal/adapters/statestore"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore_KeyValue(t *testing.T) {
	Convey("Given a new memory store", t, func() {
		ctx := context.Background()
		store := statestore.NewMemoryStore(ctx)
		defer store.Close()

		Convey("When setting and getting a key", func() {
			err := store.Set(ctx, "k1", "v1", 0)
			So(err, ShouldBeNil)

			Convey("Then the value is returned", func() {
				v, ok, err := store.Get(ctx, "k1")
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "v1")
			})

			Convey("And Exists reports it", func() {
				ok, err := store.Exists(ctx, "k1")
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When getting a missing key", func() {
			_, ok, err := store.Get(ctx, "nope")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("When overwriting a key", func() {
			So(store.Set(ctx, "k1", "old", 0), ShouldBeNil)
			So(store.Set(ctx, "k1", "new", 0), ShouldBeNil)

			v, ok, err := store.Get(ctx, "k1")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, "new")
		})

		Convey("When deleting a key", func() {
			So(store.Set(ctx, "k1", "v1", 0), ShouldBeNil)
			So(store.Delete(ctx, "k1"), ShouldBeNil)

			_, ok, err := store.Get(ctx, "k1")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMemoryStore_TTL(t *testing.T) {
	Convey("Given a store with an adjustable clock", t, func() {
		ctx := context.Background()
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time { return now }
		store := statestore.NewMemoryStore(ctx, statestore.WithClock(clock))
		defer store.Close()

		Convey("When a key is set with a TTL", func() {
			So(store.Set(ctx, "ephemeral", "v", time.Hour), ShouldBeNil)

			Convey("Then it is readable before expiry", func() {
				v, ok, err := store.Get(ctx, "ephemeral")
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "v")
			})

			Convey("And it disappears after expiry", func() {
				now = now.Add(2 * time.Hour)
				_, ok, err := store.Get(ctx, "ephemeral")
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})

			Convey("And Exists honors expiry as well", func() {
				now = now.Add(2 * time.Hour)
				ok, err := store.Exists(ctx, "ephemeral")
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a key is set without a TTL", func() {
			So(store.Set(ctx, "durable", "v", 0), ShouldBeNil)
			now = now.Add(1000 * time.Hour)

			_, ok, err := store.Get(ctx, "durable")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestMemoryStore_Lists(t *testing.T) {
	Convey("Given a store with a populated list", t, func() {
		ctx := context.Background()
		store := statestore.NewMemoryStore(ctx)
		defer store.Close()

		for _, v := range []string{"a", "b", "c", "d"} {
			So(store.AddToList(ctx, "list", v), ShouldBeNil)
		}

		Convey("When reading the full list", func() {
			list, err := store.GetList(ctx, "list")
			So(err, ShouldBeNil)
			So(list, ShouldResemble, []string{"a", "b", "c", "d"})
		})

		Convey("When reading a range", func() {
			list, err := store.GetListRange(ctx, "list", 1, 2)
			So(err, ShouldBeNil)
			So(list, ShouldResemble, []string{"b", "c"})
		})

		Convey("When reading with end=-1", func() {
			list, err := store.GetListRange(ctx, "list", 2, -1)
			So(err, ShouldBeNil)
			So(list, ShouldResemble, []string{"c", "d"})
		})

		Convey("When the range starts past the end", func() {
			list, err := store.GetListRange(ctx, "list", 10, -1)
			So(err, ShouldBeNil)
			So(list, ShouldBeEmpty)
		})

		Convey("When asking for the length", func() {
			n, err := store.ListLength(ctx, "list")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 4)
		})

		Convey("When deleting the list key", func() {
			So(store.Delete(ctx, "list"), ShouldBeNil)
			n, err := store.ListLength(ctx, "list")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 0)
		})
	})
}
