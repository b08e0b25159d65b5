// Package votable holds the in-memory element tree of a VOTABLE document and
// the decoder that builds it from TABLEDATA-serialized XML.
//
// The tree mirrors the document: a VOTable holds Resources, a Resource holds
// Tables (and possibly nested Resources), and a Table holds its PARAM and FIELD
// descriptors plus the rows of cells. Every attribute is kept exactly as it
// appeared in the file; interpretation is left to the validator package.
//
//	doc, err := votable.DecodeFile("selavy-islands.xml")
//	if err != nil {
//	    return err
//	}
//	for _, t := range doc.Tables() {
//	    fmt.Println(len(t.Fields), len(t.Rows))
//	}
package votable
