// Package discovery turns the static discovery document into file_sd style
// target groups.
//
// Targets are grouped by tag. For every endpoint and every distinct tag one
// Group is emitted whose targets are the URLs carrying that tag and whose
// labels identify the endpoint and the tag:
//
//	__endpoint__url      endpoint address
//	__endpoint__name     endpoint name
//	__endpoint__geohash  endpoint geohash
//	__target__tag        tag
//
// Groups are ordered endpoint-major, then by the order in which each tag is
// first seen across the target list.
package discovery
