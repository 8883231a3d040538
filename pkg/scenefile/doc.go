// Package scenefile reads and writes scenes as JSON so the command line
// tools can run operators against files.
//
// # JSON Format
//
//	{
//	  "editor": {
//	    "space_type": "NODE_EDITOR",
//	    "tree_type": "ShaderNodeTree",
//	    "material": "Wood",
//	    "view_center": {"x": 0, "y": 0}
//	  },
//	  "materials": [
//	    {
//	      "name": "Wood",
//	      "use_nodes": true,
//	      "tree": {
//	        "active": "Image Texture",
//	        "nodes": [
//	          {"name": "Image Texture", "type": "TEX_IMAGE", "label": "wood_diff",
//	           "outputs": [{"name": "Color"}], "selected": true}
//	        ],
//	        "links": []
//	      }
//	    }
//	  ],
//	  "groups": [{"name": "K-Tools: BSDF", "nodes": [], "links": []}],
//	  "tool_settings": {"search_mode": "FULL_MATERIAL", "interpolation": "Cubic"}
//	}
//
// Node types are the shader graph names (TEX_IMAGE, GROUP, BSDF_PRINCIPLED,
// GROUP_INPUT, GROUP_OUTPUT, OTHER); anything else imports as OTHER. Image
// datablocks are written inline on their node and shared by ID on import.
//
// # Import
//
// [ReadFile] and [Read] validate node names and link endpoints. Errors are
// wrapped with the material or group and the offending node or link.
//
// Missing tool settings take their defaults; invalid values fall back per
// field.
//
// # Export
//
// [WriteFile] and [Write] emit indented JSON that re-imports identically.
package scenefile
