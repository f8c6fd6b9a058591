// Package cluster provides similarity, clustering, and cross-axis alignment
// over derived feature matrices.
//
// Clustering runs hierarchical (average linkage) and partitional (k-medoids)
// methods across a range of cluster counts, reporting silhouette per k. A
// partition is only accepted when its silhouette exceeds the pre-declared
// threshold; below threshold the sweep reports VerdictNoStructure. The
// negative result is part of the contract — manuscript features frequently
// have no discrete structure, and forcing a partition anyway is how past
// analyses went wrong.
//
// Cross-axis alignment quantifies (in)dependence of two independently
// derived groupings of the same entities via adjusted Rand index and
// adjusted mutual information, both chance-corrected.
//
// Everything here is deterministic: ties break on the lowest index, medoid
// initialization is greedy rather than sampled, and no map iteration order
// leaks into results.
package cluster
