package domain

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"roguely-server/internal/core/types"
	"roguely-server/internal/core/types/enums"
)

func TestRegistryGroups(t *testing.T) {
	Convey("Given an empty registry", t, func() {
		r := NewRegistry()

		Convey("Adding an entity to a missing group creates the group", func() {
			e := NewEntity("goblin")
			id := r.AddEntityToGroup(GroupMobs, e)

			So(id.IsNil(), ShouldBeFalse)
			So(id.Arena(), ShouldEqual, types.ArenaEntity)

			entities, ok := r.EntitiesInGroup(GroupMobs)
			So(ok, ShouldBeTrue)
			So(entities, ShouldHaveLength, 1)
			So(entities[0], ShouldEqual, e)
		})

		Convey("CreateGroup is not idempotent", func() {
			r.CreateGroup("other")
			r.CreateGroup("other")
			So(r.GroupNames(), ShouldResemble, []string{"other"})
			So(len(r.groups), ShouldEqual, 2)
		})

		Convey("CreateEntityInGroup fails when the group is absent", func() {
			e, ok := r.CreateEntityInGroup("nowhere", "ghost")
			So(ok, ShouldBeFalse)
			So(e, ShouldBeNil)
		})

		Convey("CreateEntityInGroup succeeds for an existing group", func() {
			r.CreateGroup(GroupItems)
			e, ok := r.CreateEntityInGroup(GroupItems, "coin")
			So(ok, ShouldBeTrue)
			So(e.Name(), ShouldEqual, "coin")

			found, ok := r.EntityByName(GroupItems, "coin")
			So(ok, ShouldBeTrue)
			So(found, ShouldEqual, e)

			id, ok := r.EntityIDByName(GroupItems, "coin")
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, e.ID)
		})

		Convey("Lookups on a missing group are absent, not errors", func() {
			_, ok := r.Group("missing")
			So(ok, ShouldBeFalse)
			_, ok = r.EntitiesInGroup("missing")
			So(ok, ShouldBeFalse)
			So(r.FindEntitiesInGroup("missing", ByName("x")), ShouldBeEmpty)
		})
	})
}

func TestRegistryRemove(t *testing.T) {
	Convey("Given a group with two entities", t, func() {
		r := NewRegistry()
		a := NewEntity("rat")
		b := NewEntity("rat")
		r.AddEntityToGroup(GroupMobs, a)
		r.AddEntityToGroup(GroupMobs, b)

		Convey("Removing an unknown id leaves the group unchanged", func() {
			removed := r.RemoveEntity(GroupMobs, types.PackID(types.ArenaEntity, 9, 99))
			So(removed, ShouldBeFalse)
			entities, _ := r.EntitiesInGroup(GroupMobs)
			So(entities, ShouldHaveLength, 2)
		})

		Convey("Removing a known id removes only that entity and invalidates its handle", func() {
			oldID := a.ID
			So(r.RemoveEntity(GroupMobs, oldID), ShouldBeTrue)

			entities, _ := r.EntitiesInGroup(GroupMobs)
			So(entities, ShouldHaveLength, 1)
			So(entities[0], ShouldEqual, b)

			_, ok := r.Lookup(oldID)
			So(ok, ShouldBeFalse)

			Convey("A reused slot gets a new generation", func() {
				c := NewEntity("bat")
				newID := r.AddEntityToGroup(GroupMobs, c)
				So(newID.Index(), ShouldEqual, oldID.Index())
				So(newID, ShouldNotEqual, oldID)
				So(r.Len(), ShouldEqual, 2)
			})
		})

		Convey("A slot with an exhausted generation is never reused", func() {
			oldID := a.ID
			r.slots[oldID.Index()].gen = types.MaxGeneration
			stale := types.PackID(types.ArenaEntity, types.MaxGeneration, oldID.Index())
			a.ID = stale
			So(r.RemoveEntity(GroupMobs, stale), ShouldBeTrue)

			c := NewEntity("bat")
			newID := r.AddEntityToGroup(GroupMobs, c)
			So(newID.Index(), ShouldNotEqual, oldID.Index())
			_, ok := r.Lookup(stale)
			So(ok, ShouldBeFalse)
			_, ok = r.Lookup(types.PackID(types.ArenaEntity, 1, oldID.Index()))
			So(ok, ShouldBeFalse)
		})
	})
}

func TestRegistryPlayer(t *testing.T) {
	Convey("The player role is a dedicated handle", t, func() {
		r := NewRegistry()
		p := NewEntity("hero")
		p.SetPosition(Point{X: 3, Y: 4})
		r.AddEntityToGroup(GroupPlayer, p)

		So(r.SetPlayer(p.ID), ShouldBeTrue)
		got, ok := r.Player()
		So(ok, ShouldBeTrue)
		So(got, ShouldEqual, p)

		pos, ok := r.PlayerPosition()
		So(ok, ShouldBeTrue)
		So(pos, ShouldResemble, Point{X: 3, Y: 4})

		Convey("Moving the player to another group keeps the role", func() {
			r.AddEntityToGroup(GroupOther, p)
			group, _ := r.GroupOf(p.ID)
			So(group, ShouldEqual, GroupOther)
			players, _ := r.EntitiesInGroup(GroupPlayer)
			So(players, ShouldBeEmpty)
			_, ok := r.Player()
			So(ok, ShouldBeTrue)
		})

		Convey("Removing the player clears the role", func() {
			r.RemoveEntity(GroupPlayer, p.ID)
			_, ok := r.Player()
			So(ok, ShouldBeFalse)
		})

		Convey("SetPlayer rejects stale handles", func() {
			So(r.SetPlayer(types.PackID(types.ArenaEntity, 5, 0)), ShouldBeFalse)
		})
	})
}

func TestRegistryComponentValues(t *testing.T) {
	Convey("Given a player with typed components", t, func() {
		r := NewRegistry()
		p := NewEntity("hero")
		p.AddComponent(&HealthComponent{Current: 30, Max: 40})
		p.AddComponent(&StatsComponent{Attack: 5})
		p.AddComponent(&ScoreComponent{Score: 12})
		p.AddComponent(&InventoryComponent{})
		props := NewPropertiesComponent("script")
		props.Put("mana_component", "mana", 7)
		p.AddComponent(props)
		r.AddEntityToGroup(GroupPlayer, p)

		Convey("Reads dispatch on the component kind", func() {
			So(r.GetComponentValue(GroupPlayer, p.ID, "score", ""), ShouldEqual, 12)
			So(r.GetComponentValue(GroupPlayer, p.ID, "health_component", "health"), ShouldEqual, 30)
			So(r.GetComponentValue(GroupPlayer, p.ID, "health", "max"), ShouldEqual, 40)
			So(r.GetComponentValue(GroupPlayer, p.ID, "stats", "attack"), ShouldEqual, 5)
			So(r.GetComponentValue(GroupPlayer, p.ID, "mana_component", "mana"), ShouldEqual, 7)
		})

		Convey("Absent components yield the sentinel", func() {
			So(r.GetComponentValue(GroupPlayer, p.ID, "value", ""), ShouldEqual, ValueNotFound)
			So(r.GetComponentValue(GroupPlayer, p.ID, "mana_component", "missing"), ShouldEqual, ValueNotFound)
			So(r.GetComponentValue(GroupPlayer, p.ID, "unknown", "x"), ShouldEqual, ValueNotFound)
			So(r.GetComponentValue("nowhere", p.ID, "score", ""), ShouldEqual, ValueNotFound)
			So(ComponentValue(nil, "score", ""), ShouldEqual, ValueNotFound)
		})

		Convey("Unrecognized keys on typed components yield the sentinel", func() {
			So(r.GetComponentValue(GroupPlayer, p.ID, "health", "current"), ShouldEqual, 30)
			So(r.GetComponentValue(GroupPlayer, p.ID, "health", "mana"), ShouldEqual, ValueNotFound)
			So(r.GetComponentValue(GroupPlayer, p.ID, "score", "gold"), ShouldEqual, ValueNotFound)
			So(r.GetComponentValue(GroupPlayer, p.ID, "stats", "defense"), ShouldEqual, ValueNotFound)

			So(r.SetComponentValue(GroupPlayer, p.ID, "stats", "defense", 9), ShouldBeFalse)
			So(r.SetComponentValue(GroupPlayer, p.ID, "health", "armor", 9), ShouldBeFalse)
			So(r.GetComponentValue(GroupPlayer, p.ID, "stats", ""), ShouldEqual, 5)
			So(r.GetComponentValue(GroupPlayer, p.ID, "health", ""), ShouldEqual, 30)
		})

		Convey("Writes mirror reads", func() {
			So(r.SetComponentValue(GroupPlayer, p.ID, "score", "", 20), ShouldBeTrue)
			So(r.GetComponentValue(GroupPlayer, p.ID, "score", ""), ShouldEqual, 20)

			So(r.SetComponentValue(GroupPlayer, p.ID, "health", "", 0), ShouldBeTrue)
			hp, _ := FirstComponent[*HealthComponent](p)
			So(hp.IsDead, ShouldBeTrue)

			So(r.SetComponentValue(GroupPlayer, p.ID, "value", "", 1), ShouldBeFalse)
			So(r.SetComponentValue(GroupPlayer, p.ID, "mana_component", "mana", 2), ShouldBeTrue)
			So(r.SetComponentValue(GroupPlayer, p.ID, "rage_component", "rage", 2), ShouldBeFalse)
		})

		Convey("Inventory upsert updates in place or appends", func() {
			So(r.UpsertInventoryItem(GroupPlayer, p.ID, "coin", 1), ShouldBeTrue)
			So(r.UpsertInventoryItem(GroupPlayer, p.ID, "gem", 2), ShouldBeTrue)
			So(r.UpsertInventoryItem(GroupPlayer, p.ID, "coin", 5), ShouldBeTrue)

			inv, _ := FirstComponent[*InventoryComponent](p)
			So(inv.Items, ShouldResemble, []InventoryItem{{Name: "coin", Count: 5}, {Name: "gem", Count: 2}})
		})

		Convey("Inventory upsert fails without an inventory", func() {
			m := NewEntity("rat")
			r.AddEntityToGroup(GroupMobs, m)
			So(r.UpsertInventoryItem(GroupMobs, m.ID, "coin", 1), ShouldBeFalse)
		})
	})
}

func TestRegistryQueries(t *testing.T) {
	Convey("Given entities placed on the map", t, func() {
		r := NewRegistry()
		hero := NewEntity("hero")
		hero.SetPosition(Point{X: 1, Y: 1})
		coin := NewEntity("coin")
		coin.SetPosition(Point{X: 1, Y: 1})
		rat := NewEntity("rat")
		rat.SetPosition(Point{X: 2, Y: 1})
		unplaced := NewEntity("note")

		r.AddEntityToGroup(GroupPlayer, hero)
		r.AddEntityToGroup(GroupItems, coin)
		r.AddEntityToGroup(GroupMobs, rat)
		r.AddEntityToGroup(GroupOther, unplaced)

		Convey("IsPointUnique detects occupied cells", func() {
			So(r.IsPointUnique(Point{X: 1, Y: 1}), ShouldBeFalse)
			So(r.IsPointUnique(Point{X: 5, Y: 5}), ShouldBeTrue)
		})

		Convey("ForEachOverlapping skips the named entity", func() {
			var names []string
			n := r.ForEachOverlapping("hero", Point{X: 1, Y: 1}, func(o Overlap) {
				names = append(names, o.Entity.Name())
				So(o.FullName, ShouldEqual, o.Entity.FullName())
			})
			So(n, ShouldEqual, 1)
			So(names, ShouldResemble, []string{"coin"})
		})

		Convey("ForEachOverlapping tolerates removal inside the callback", func() {
			r.ForEachOverlapping("hero", Point{X: 1, Y: 1}, func(o Overlap) {
				r.RemoveEntity(o.Group, o.Entity.ID)
			})
			items, _ := r.EntitiesInGroup(GroupItems)
			So(items, ShouldBeEmpty)
		})

		Convey("EntitiesInViewport uses the containment predicate", func() {
			entries := r.EntitiesInViewport(func(x, y int) bool { return x <= 1 })
			So(entries, ShouldHaveLength, 2)
			So(entries[0].Group, ShouldEqual, GroupPlayer)
			So(entries[1].Name, ShouldEqual, "coin")
		})

		Convey("BlockedBy reports the neighbour in the direction of travel", func() {
			bp, ok := r.BlockedBy(GroupMobs, Point{X: 1, Y: 1}, enums.DirectionRight)
			So(ok, ShouldBeTrue)
			So(bp.EntityName, ShouldEqual, "rat")
			So(bp.Position, ShouldResemble, Point{X: 2, Y: 1})

			_, ok = r.BlockedBy(GroupMobs, Point{X: 1, Y: 1}, enums.DirectionLeft)
			So(ok, ShouldBeFalse)
		})

		Convey("EntitiesAt filters by group", func() {
			So(r.EntitiesAt(Point{X: 1, Y: 1}), ShouldHaveLength, 2)
			So(r.EntitiesAt(Point{X: 1, Y: 1}, GroupItems), ShouldHaveLength, 1)
			So(r.EntitiesAt(Point{X: 1, Y: 1}, GroupMobs), ShouldBeEmpty)
		})
	})
}
