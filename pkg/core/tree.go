package core

// BuildItemTree reconstructs the checklist hierarchy from a flat list of
// items already sorted by position ascending. Items without a parent, or
// whose parent is absent from the input set, become roots. Children keep
// the relative order they had in the input, so sorting must happen before
// building, never after.
//
// The builder is a two-pass arena walk: it never follows a live parent
// pointer chain, so a parent cycle cannot loop or crash. Cyclic items end
// up attached to their in-map parents and absent from the root list.
func BuildItemTree(items []*Item) []*ItemNode {
	nodes := make(map[string]*ItemNode, len(items))
	for _, it := range items {
		nodes[it.ID] = &ItemNode{Item: it, Children: []*ItemNode{}}
	}

	roots := []*ItemNode{}
	for _, it := range items {
		node := nodes[it.ID]
		if it.ParentID != nil {
			if parent, ok := nodes[*it.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// FolderNode is a folder with its resolved child folders and the suites
// it contains.
type FolderNode struct {
	*Folder
	Children []*FolderNode `json:"children"`
	Suites   []*Suite      `json:"suites"`
}

// BuildFolderTree groups suites under their folders and nests folders by
// parent reference, with the same root policy as BuildItemTree: folders
// with a missing parent become roots. Suites without a folder (or with a
// folder absent from the input) are returned separately as loose suites.
func BuildFolderTree(folders []*Folder, suites []*Suite) (roots []*FolderNode, loose []*Suite) {
	nodes := make(map[string]*FolderNode, len(folders))
	for _, f := range folders {
		nodes[f.ID] = &FolderNode{Folder: f, Children: []*FolderNode{}, Suites: []*Suite{}}
	}

	roots = []*FolderNode{}
	for _, f := range folders {
		node := nodes[f.ID]
		if f.ParentID != nil {
			if parent, ok := nodes[*f.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	for _, s := range suites {
		if s.FolderID != nil {
			if node, ok := nodes[*s.FolderID]; ok {
				node.Suites = append(node.Suites, s)
				continue
			}
		}
		loose = append(loose, s)
	}

	return roots, loose
}
