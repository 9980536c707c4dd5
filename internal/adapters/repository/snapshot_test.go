package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	repository "github.com/okian/alpe/internal/adapters/repository"
	"github.com/okian/alpe/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func records() []model.EnrichedRecord {
	return model.EnrichAll([]model.RawRecord{
		{Time: "36:40", Year: 1994},
		{Time: "36:50", Year: 1995, Doping: "Admitted"},
	})
}

func TestSnapshotStore(t *testing.T) {
	Convey("Given an empty snapshot store", t, func() {
		ctx := context.Background()
		store := repository.NewSnapshotStore()

		Convey("Then it reports nothing loaded", func() {
			So(store.Loaded(ctx), ShouldBeFalse)
			So(store.Count(ctx), ShouldEqual, 0)
			_, err := store.All(ctx)
			So(errors.Is(err, repository.ErrNotLoaded), ShouldBeTrue)
		})

		Convey("When the dataset is stored", func() {
			So(store.Put(ctx, records()), ShouldBeNil)

			Convey("Then it is readable in load order", func() {
				all, err := store.All(ctx)
				So(err, ShouldBeNil)
				So(len(all), ShouldEqual, 2)
				So(all[0].Year, ShouldEqual, 1994)
				So(store.Count(ctx), ShouldEqual, 2)
				So(store.Loaded(ctx), ShouldBeTrue)
			})

			Convey("And a second write is rejected", func() {
				err := store.Put(ctx, nil)
				So(errors.Is(err, repository.ErrAlreadyLoaded), ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 2)
			})

			Convey("And callers cannot mutate the snapshot", func() {
				all, _ := store.All(ctx)
				all[0].Name = "changed"
				again, _ := store.All(ctx)
				So(again[0].Name, ShouldEqual, "")
			})
		})

		Convey("When the caller mutates its slice after Put", func() {
			in := records()
			So(store.Put(ctx, in), ShouldBeNil)
			in[0].Name = "changed"
			all, _ := store.All(ctx)
			So(all[0].Name, ShouldEqual, "")
		})

		Convey("When an empty dataset is stored", func() {
			So(store.Put(ctx, nil), ShouldBeNil)
			So(store.Loaded(ctx), ShouldBeTrue)
			all, err := store.All(ctx)
			So(err, ShouldBeNil)
			So(all, ShouldBeEmpty)
			So(all, ShouldNotBeNil)
		})
	})

	Convey("Given concurrent writers", t, func() {
		ctx := context.Background()
		store := repository.NewSnapshotStore()
		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			oks int
		)
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if store.Put(ctx, records()) == nil {
					mu.Lock()
					oks++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		Convey("Then exactly one write wins", func() {
			So(oks, ShouldEqual, 1)
		})
	})
}
