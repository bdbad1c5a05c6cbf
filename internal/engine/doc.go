// Package engine orchestrates the life cycle of a tensegrity structure:
// Growing, Shaping, Slack, Pretensing and finally Pretenst.
//
// Every [Engine.Tick] first advances the dynamics; while the dynamics
// report busy nothing else happens that tick. Only when calm does the
// engine let the grower emit one generation, collate marks at growth
// completion, resolve temporary connectors, or settle a pretensing
// structure into Pretenst. Stage changes beyond that are explicit
// commands through [Engine.RequestStage].
package engine
