// Package partner models the delivery partner profile.
//
// A Partner is created at signup, unapproved and offline. Profile, vehicle, payment and
// status edits are expressed as Patch values that carry only the fields they change;
// record stores merge a patch into the stored document without reading it first.
package partner
