// Package graph defines the topology an Echo wave runs over and the JSON
// description it is loaded from.
//
// A topology maps every node to a role and an ordered list of neighbors. The
// wave needs exactly one initiator, a symmetric neighbor relation, and every
// node reachable from the initiator; NewTopology rejects anything else with a
// common.ConfigErr, so the simulation never starts on a graph it cannot finish.
//
// Upon starting up, the echo command expects to find a graph.json file in its
// data directory:
//
//  {
//    "I": {"role": "initiator", "neighbors": ["A", "B"]},
//    "A": {"neighbors": ["I", "B"]},
//    "B": {"neighbors": ["I", "A"]}
//  }
//
// The role field defaults to participant.
package graph
