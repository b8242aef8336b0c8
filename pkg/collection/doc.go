// Package collection provides Collection, an immutable fluent wrapper over a
// slice, and generic functions for the transformations that change the
// element type (Map, Pluck, GroupBy) or need a constraint on it (Sum, Sort).
//
//	active := collection.New(users...).
//		Filter(func(u User) bool { return u.Active }).
//		SortBy(func(a, b User) int { return strings.Compare(a.Name, b.Name) })
//	names := collection.Map(active, func(u User) string { return u.Name })
//
// Every method returns a new collection; the receiver is never modified.
package collection
