// Package sequence implements snapshot assembly for the send-time
// decision engine.
//
// The service layer loads read-only contact/campaign/step/progress
// snapshots through the Repository interface and runs the pure engine
// (internal/schedule) over them. It never sends mail and never mutates
// contact state; turning SEND decisions into actual sends is the batch
// runner's job.
//
// Repository implementations live in repository/postgres/.
package sequence
