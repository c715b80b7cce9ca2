// Package service maps stack services to swarm service specs.
//
// A stack service declares image, command, args, env, replicas, ports,
// networks, constraints and labels. Network references are namespaced like the
// networks themselves. Services are updated in place with the version of
// their last inspect.
package service
