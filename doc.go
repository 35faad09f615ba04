/*
Package karon maps the lineage of process records, such as a manufactured
sample and the samples derived from it, and moves information along that
lineage.

Records become nodes of a tree or of a directed acyclic graph. Two
complementary operations work on these structures:

   aggregate    pull attributes of descendants up into their ancestors
   propagate    push attributes of ancestors down into their descendants

Both stay correct for graphs with merge points ("diamonds"), where a node
is reachable along more than one path. Attributes carry an identity, so the
same measurement arriving along two paths is merged exactly once, while two
distinct measurements sharing a name remain distinct.

Sub-packages:

   uid                  unique identity tokens
   attribute            identified, named, valued facts and sets thereof
   tree                 generic ownership tree with NLR/LNR/LRN/BFS traversal
   tree/operational     read/write gating for pulls and pushes on trees
   graph                DAG of attribute-owning nodes; aggregate, propagate, disseminate

This package holds the error taxonomy shared by all of them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
Copyright © 2026 The karon Authors

*/
package karon
